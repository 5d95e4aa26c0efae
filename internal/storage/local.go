package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shogun-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalStore keeps objects on disk and hands out tokenized download links
// served by the API under DownloadPrefix.
type LocalStore struct {
	root    string
	baseURL string
	links   LinkStore
}

const DownloadPrefix = "/api/archivos/"

func NewLocalStore(root, publicBaseURL string, links LinkStore) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{
		root:    abs,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		links:   links,
	}, nil
}

func (s *LocalStore) fullPath(objectPath string) (string, error) {
	if !validPath(objectPath) {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, filepath.FromSlash(objectPath)), nil
}

func (s *LocalStore) Put(ctx context.Context, objectPath string, data []byte, _ string) error {
	full, err := s.fullPath(objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		logger.FromCtx(ctx).Error("failed to write object",
			zap.String("layer", "storage"),
			zap.String("path", objectPath),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *LocalStore) SignedURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error) {
	full, err := s.fullPath(objectPath)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrObjectNotFound
		}
		return "", err
	}

	token := uuid.NewString()
	if err := s.links.Save(ctx, token, objectPath, ttl); err != nil {
		return "", err
	}
	return s.baseURL + DownloadPrefix + token, nil
}

func (s *LocalStore) Delete(_ context.Context, objectPath string) error {
	full, err := s.fullPath(objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrObjectNotFound
		}
		return err
	}
	return nil
}

// Locate resolves a download token to the file on disk.
func (s *LocalStore) Locate(ctx context.Context, token string) (string, error) {
	objectPath, err := s.links.Resolve(ctx, token)
	if err != nil {
		return "", err
	}
	full, err := s.fullPath(objectPath)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(full); err != nil {
		return "", ErrObjectNotFound
	}
	return full, nil
}

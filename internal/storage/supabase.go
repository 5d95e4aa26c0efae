package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shogun-be/internal/logger"

	"go.uber.org/zap"
)

type supabaseStore struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

// NewSupabaseStore talks to the Supabase Storage REST API with the service
// role key.
func NewSupabaseStore(baseURL, bucket, serviceKey string) Store {
	if serviceKey == "" {
		logger.L().Warn("supabase service key is empty")
	}

	return &supabaseStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *supabaseStore) objectURL(kind, objectPath string) string {
	if kind != "" {
		return fmt.Sprintf("%s/storage/v1/object/%s/%s/%s", s.baseURL, kind, s.bucket, objectPath)
	}
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, objectPath)
}

func (s *supabaseStore) do(ctx context.Context, method, url string, body io.Reader, contentType string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read storage response: %w", err)
	}
	return b, resp.StatusCode, nil
}

func (s *supabaseStore) Put(ctx context.Context, objectPath string, data []byte, contentType string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "storage"),
		zap.String("method", "Put"),
		zap.String("path", objectPath),
		zap.Int("size", len(data)),
	)

	if !validPath(objectPath) {
		return ErrInvalidPath
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	body, status, err := s.do(ctx, http.MethodPost, s.objectURL("", objectPath), bytes.NewReader(data), contentType)
	if err != nil {
		log.Error("storage request failed", zap.Error(err))
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		log.Error("storage returned non-success status",
			zap.Int("status", status),
			zap.ByteString("response", body),
		)
		return fmt.Errorf("storage upload failed: status %d", status)
	}

	log.Info("object stored")
	return nil
}

type signRequest struct {
	ExpiresIn int `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

func (s *supabaseStore) SignedURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "storage"),
		zap.String("method", "SignedURL"),
		zap.String("path", objectPath),
	)

	payload, err := json.Marshal(signRequest{ExpiresIn: int(ttl.Seconds())})
	if err != nil {
		return "", err
	}

	body, status, err := s.do(ctx, http.MethodPost, s.objectURL("sign", objectPath), bytes.NewReader(payload), "application/json")
	if err != nil {
		log.Error("storage request failed", zap.Error(err))
		return "", err
	}
	if status == http.StatusNotFound || status == http.StatusBadRequest {
		return "", ErrObjectNotFound
	}
	if status != http.StatusOK {
		log.Error("storage returned non-success status",
			zap.Int("status", status),
			zap.ByteString("response", body),
		)
		return "", fmt.Errorf("storage sign failed: status %d", status)
	}

	var res signResponse
	if err := json.Unmarshal(body, &res); err != nil {
		log.Error("failed decoding sign response", zap.Error(err))
		return "", err
	}
	if res.SignedURL == "" {
		return "", fmt.Errorf("storage sign failed: empty url")
	}

	if strings.HasPrefix(res.SignedURL, "http") {
		return res.SignedURL, nil
	}
	return s.baseURL + "/storage/v1" + res.SignedURL, nil
}

type deleteRequest struct {
	Prefixes []string `json:"prefixes"`
}

func (s *supabaseStore) Delete(ctx context.Context, objectPath string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "storage"),
		zap.String("method", "Delete"),
		zap.String("path", objectPath),
	)

	payload, err := json.Marshal(deleteRequest{Prefixes: []string{objectPath}})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s", s.baseURL, s.bucket)
	body, status, err := s.do(ctx, http.MethodDelete, url, bytes.NewReader(payload), "application/json")
	if err != nil {
		log.Error("storage request failed", zap.Error(err))
		return err
	}
	if status != http.StatusOK {
		log.Error("storage returned non-success status",
			zap.Int("status", status),
			zap.ByteString("response", body),
		)
		return fmt.Errorf("storage delete failed: status %d", status)
	}
	return nil
}

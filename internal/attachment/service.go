package attachment

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shogun-be/internal/logger"
	"shogun-be/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DownloadTTL is how long a download link stays valid.
const DownloadTTL = time.Hour

type OrderChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service interface {
	List(ctx context.Context, pedidoID string) ([]*Attachment, error)
	Upload(ctx context.Context, pedidoID string, by Uploader, up Upload) (*Attachment, error)
	DownloadURL(ctx context.Context, pedidoID, id string) (string, *Attachment, error)
	Delete(ctx context.Context, pedidoID, id string) error
	MaxBytes() int64
}

type service struct {
	repo   Repository
	store  storage.Store
	orders OrderChecker
	maxMB  int64
}

func NewService(repo Repository, store storage.Store, orders OrderChecker, maxMB int64) Service {
	return &service{repo: repo, store: store, orders: orders, maxMB: maxMB}
}

func (s *service) MaxBytes() int64 {
	return s.maxMB << 20
}

func (s *service) List(ctx context.Context, pedidoID string) ([]*Attachment, error) {
	return s.repo.ListByOrder(ctx, pedidoID)
}

// Upload stores the file, then records its metadata. A metadata failure
// leaves the stored object behind; it is logged for manual cleanup.
func (s *service) Upload(ctx context.Context, pedidoID string, by Uploader, up Upload) (*Attachment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Upload"),
		zap.String("order_id", pedidoID),
		zap.String("filename", up.Filename),
		zap.Int("size", len(up.Data)),
	)

	if len(up.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(up.Data)) > s.MaxBytes() {
		return nil, FileTooLarge(s.maxMB)
	}

	exists, err := s.orders.Exists(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOrderNotFound
	}

	name := storage.SafeName(up.Filename)
	contentType := strings.TrimSpace(up.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(up.Data)
	}

	objectPath := storage.ObjectPath(pedidoID, name)
	if err := s.store.Put(ctx, objectPath, up.Data, contentType); err != nil {
		log.Error("failed to store file", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Create(ctx, &Attachment{
		PedidoID:        pedidoID,
		NombreOriginal:  name,
		StoragePath:     objectPath,
		TipoMime:        contentType,
		TamanoBytes:     int64(len(up.Data)),
		SubidoPorEmail:  by.Email,
		SubidoPorNombre: by.Nombre,
	})
	if err != nil {
		log.Error("metadata insert failed, stored object orphaned",
			zap.String("storage_path", objectPath),
			zap.Error(err),
		)
		return nil, err
	}

	log.Info("attachment uploaded", zap.String("attachment_id", created.ID))
	return created, nil
}

func (s *service) DownloadURL(ctx context.Context, pedidoID, id string) (string, *Attachment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", nil, ErrAttachmentNotFound
	}

	a, err := s.repo.GetByID(ctx, pedidoID, id)
	if err != nil {
		return "", nil, err
	}

	url, err := s.store.SignedURL(ctx, a.StoragePath, DownloadTTL)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			logger.FromCtx(ctx).Warn("attachment row without stored object",
				zap.String("attachment_id", id),
				zap.String("storage_path", a.StoragePath),
			)
			return "", nil, ErrAttachmentNotFound
		}
		return "", nil, err
	}
	return url, a, nil
}

// Delete removes the metadata row first. Object removal is best effort.
func (s *service) Delete(ctx context.Context, pedidoID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrAttachmentNotFound
	}

	objectPath, err := s.repo.Delete(ctx, pedidoID, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, objectPath); err != nil {
		logger.FromCtx(ctx).Warn("failed to delete stored object, left orphaned",
			zap.String("layer", "service"),
			zap.String("attachment_id", id),
			zap.String("storage_path", objectPath),
			zap.Error(err),
		)
	}
	return nil
}

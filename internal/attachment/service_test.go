package attachment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"shogun-be/internal/logger"
	"shogun-be/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListByOrder(ctx context.Context, pedidoID string) ([]*Attachment, error) {
	args := m.Called(ctx, pedidoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Attachment), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, pedidoID, id string) (*Attachment, error) {
	args := m.Called(ctx, pedidoID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Attachment), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, a *Attachment) (*Attachment, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Attachment), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, pedidoID, id string) (string, error) {
	args := m.Called(ctx, pedidoID, id)
	return args.String(0), args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Put(ctx context.Context, objectPath string, data []byte, contentType string) error {
	return m.Called(ctx, objectPath, data, contentType).Error(0)
}

func (m *MockStore) SignedURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, objectPath, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, objectPath string) error {
	return m.Called(ctx, objectPath).Error(0)
}

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

const attachmentID = "4d3c2b1a-0f9e-4d8c-8b7a-6f5e4d3c2b1a"

var uploader = Uploader{Email: "ana@example.com", Nombre: "Ana"}

func newTestService() (Service, *MockRepository, *MockStore, *MockOrders) {
	repo := new(MockRepository)
	store := new(MockStore)
	orders := new(MockOrders)
	return NewService(repo, store, orders, 10), repo, store, orders
}

func TestService_Upload(t *testing.T) {
	ctx := context.Background()
	pdf := []byte("%PDF-1.4 test document")

	t.Run("Success", func(t *testing.T) {
		s, repo, store, orders := newTestService()

		orders.On("Exists", ctx, "P0001").Return(true, nil)
		store.On("Put", ctx, mock.MatchedBy(func(p string) bool {
			return strings.HasPrefix(p, "pedidos/P0001/") && strings.HasSuffix(p, "_diseño.pdf")
		}), pdf, "application/pdf").Return(nil)
		repo.On("Create", ctx, mock.MatchedBy(func(a *Attachment) bool {
			return a.NombreOriginal == "diseño.pdf" && a.TamanoBytes == int64(len(pdf)) && a.SubidoPorEmail == "ana@example.com"
		})).Return(&Attachment{ID: attachmentID}, nil)

		a, err := s.Upload(ctx, "P0001", uploader, Upload{Filename: "diseño.pdf", Data: pdf})
		require.NoError(t, err)
		assert.Equal(t, attachmentID, a.ID)
		store.AssertExpectations(t)
	})

	t.Run("Too large is rejected before storage", func(t *testing.T) {
		s, _, store, orders := newTestService()

		big := make([]byte, 10<<20+1)
		_, err := s.Upload(ctx, "P0001", uploader, Upload{Filename: "big.bin", Data: big})
		require.Error(t, err)
		assert.Equal(t, "El archivo excede el tamaño máximo de 10 MB", err.Error())
		orders.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Empty file", func(t *testing.T) {
		s, _, _, _ := newTestService()
		_, err := s.Upload(ctx, "P0001", uploader, Upload{Filename: "a.txt"})
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("Unknown order", func(t *testing.T) {
		s, _, store, orders := newTestService()

		orders.On("Exists", ctx, "P0404").Return(false, nil)

		_, err := s.Upload(ctx, "P0404", uploader, Upload{Filename: "a.pdf", Data: pdf})
		assert.ErrorIs(t, err, ErrOrderNotFound)
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Storage failure skips metadata", func(t *testing.T) {
		s, repo, store, orders := newTestService()

		orders.On("Exists", ctx, "P0001").Return(true, nil)
		store.On("Put", ctx, mock.Anything, pdf, "image/png").Return(errors.New("upstream 503"))

		_, err := s.Upload(ctx, "P0001", uploader, Upload{Filename: "a.png", ContentType: "image/png", Data: pdf})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Metadata failure logs orphan", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		restore := logger.Replace(zap.New(core))
		defer restore()

		s, repo, store, orders := newTestService()

		orders.On("Exists", ctx, "P0001").Return(true, nil)
		store.On("Put", ctx, mock.Anything, pdf, mock.Anything).Return(nil)
		repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db down"))

		_, err := s.Upload(ctx, "P0001", uploader, Upload{Filename: "a.pdf", Data: pdf})
		assert.Error(t, err)

		entries := logs.FilterMessage("metadata insert failed, stored object orphaned").All()
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].ContextMap()["storage_path"], "pedidos/P0001/")
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestService_DownloadURL(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		s, repo, store, _ := newTestService()

		repo.On("GetByID", ctx, "P0001", attachmentID).
			Return(&Attachment{ID: attachmentID, NombreOriginal: "a.pdf", StoragePath: "pedidos/P0001/x_a.pdf"}, nil)
		store.On("SignedURL", ctx, "pedidos/P0001/x_a.pdf", time.Hour).Return("https://signed/url", nil)

		url, a, err := s.DownloadURL(ctx, "P0001", attachmentID)
		require.NoError(t, err)
		assert.Equal(t, "https://signed/url", url)
		assert.Equal(t, "a.pdf", a.NombreOriginal)
	})

	t.Run("Missing object", func(t *testing.T) {
		s, repo, store, _ := newTestService()

		repo.On("GetByID", ctx, "P0001", attachmentID).
			Return(&Attachment{ID: attachmentID, StoragePath: "pedidos/P0001/x_a.pdf"}, nil)
		store.On("SignedURL", ctx, mock.Anything, mock.Anything).Return("", storage.ErrObjectNotFound)

		_, _, err := s.DownloadURL(ctx, "P0001", attachmentID)
		assert.ErrorIs(t, err, ErrAttachmentNotFound)
	})

	t.Run("Malformed id", func(t *testing.T) {
		s, repo, _, _ := newTestService()
		_, _, err := s.DownloadURL(ctx, "P0001", "42")
		assert.ErrorIs(t, err, ErrAttachmentNotFound)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Store failure is swallowed", func(t *testing.T) {
		s, repo, store, _ := newTestService()

		repo.On("Delete", ctx, "P0001", attachmentID).Return("pedidos/P0001/x_a.pdf", nil)
		store.On("Delete", ctx, "pedidos/P0001/x_a.pdf").Return(errors.New("timeout"))

		assert.NoError(t, s.Delete(ctx, "P0001", attachmentID))
		store.AssertExpectations(t)
	})

	t.Run("Unknown attachment", func(t *testing.T) {
		s, repo, store, _ := newTestService()

		repo.On("Delete", ctx, "P0001", attachmentID).Return("", ErrAttachmentNotFound)

		assert.ErrorIs(t, s.Delete(ctx, "P0001", attachmentID), ErrAttachmentNotFound)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newTestSupabase() *supabaseStore {
	return NewSupabaseStore("https://abc.supabase.co/", "pedidos-adjuntos", "service-key").(*supabaseStore)
}

func TestSupabaseStore_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		s := newTestSupabase()
		s.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "https://abc.supabase.co/storage/v1/object/pedidos-adjuntos/pedidos/P0001/ab12cd34_logo.png", req.URL.String())
			assert.Equal(t, "Bearer service-key", req.Header.Get("Authorization"))
			assert.Equal(t, "service-key", req.Header.Get("apikey"))
			assert.Equal(t, "image/png", req.Header.Get("Content-Type"))

			body, _ := io.ReadAll(req.Body)
			assert.Equal(t, []byte("png-bytes"), body)
			return jsonResponse(http.StatusOK, `{"Key":"pedidos-adjuntos/pedidos/P0001/ab12cd34_logo.png"}`)
		})

		err := s.Put(ctx, "pedidos/P0001/ab12cd34_logo.png", []byte("png-bytes"), "image/png")
		assert.NoError(t, err)
	})

	t.Run("Default content type", func(t *testing.T) {
		s := newTestSupabase()
		s.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "application/octet-stream", req.Header.Get("Content-Type"))
			return jsonResponse(http.StatusOK, `{}`)
		})

		assert.NoError(t, s.Put(ctx, "pedidos/P0001/x_a.bin", []byte{1}, ""))
	})

	t.Run("Error status", func(t *testing.T) {
		s := newTestSupabase()
		s.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusConflict, `{"error":"Duplicate"}`)
		})

		err := s.Put(ctx, "pedidos/P0001/x_a.bin", []byte{1}, "")
		assert.Error(t, err)
	})

	t.Run("Network error", func(t *testing.T) {
		s := newTestSupabase()
		s.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("dial tcp: timeout")
		})

		err := s.Put(ctx, "pedidos/P0001/x_a.bin", []byte{1}, "")
		assert.Error(t, err)
	})

	t.Run("Rejects traversal", func(t *testing.T) {
		s := newTestSupabase()
		err := s.Put(ctx, "pedidos/../secret", []byte{1}, "")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})
}

func TestSupabaseStore_SignedURL(t *testing.T) {
	ctx := context.Background()

	t.Run("Relative signed url", func(t *testing.T) {
		s := newTestSupabase()
		s.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "https://abc.supabase.co/storage/v1/object/sign/pedidos-adjuntos/pedidos/P0001/f.pdf", req.URL.String())

			var body signRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, 3600, body.ExpiresIn)

			return jsonResponse(http.StatusOK, `{"signedURL":"/object/sign/pedidos-adjuntos/pedidos/P0001/f.pdf?token=abc"}`)
		})

		url, err := s.SignedURL(ctx, "pedidos/P0001/f.pdf", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, "https://abc.supabase.co/storage/v1/object/sign/pedidos-adjuntos/pedidos/P0001/f.pdf?token=abc", url)
	})

	t.Run("Missing object", func(t *testing.T) {
		s := newTestSupabase()
		s.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusBadRequest, `{"error":"not_found"}`)
		})

		_, err := s.SignedURL(ctx, "pedidos/P0001/f.pdf", time.Hour)
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("Bad body", func(t *testing.T) {
		s := newTestSupabase()
		s.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `not json`)
		})

		_, err := s.SignedURL(ctx, "pedidos/P0001/f.pdf", time.Hour)
		assert.Error(t, err)
	})
}

func TestSupabaseStore_Delete(t *testing.T) {
	ctx := context.Background()

	s := newTestSupabase()
	s.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.Equal(t, "https://abc.supabase.co/storage/v1/object/pedidos-adjuntos", req.URL.String())

		var body deleteRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, []string{"pedidos/P0001/f.pdf"}, body.Prefixes)
		return jsonResponse(http.StatusOK, `[]`)
	})
	assert.NoError(t, s.Delete(ctx, "pedidos/P0001/f.pdf"))

	s.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusInternalServerError, `{}`)
	})
	assert.Error(t, s.Delete(ctx, "pedidos/P0001/f.pdf"))
}

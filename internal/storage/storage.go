package storage

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrLinkNotFound   = errors.New("download link not found or expired")
	ErrInvalidPath    = errors.New("invalid storage path")
)

// Store is the object storage behind order attachments.
type Store interface {
	Put(ctx context.Context, objectPath string, data []byte, contentType string) error
	SignedURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// ObjectPath namespaces a file under its order: pedidos/{orderID}/{uuid8}_{name}.
func ObjectPath(orderID, filename string) string {
	return path.Join("pedidos", orderID, uuid.NewString()[:8]+"_"+SafeName(filename))
}

// SafeName strips directories and characters that are awkward in object keys.
func SafeName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '?' || r == '#' || r == '%' || r < 0x20:
			return -1
		case r == ' ':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "archivo"
	}
	return name
}

func validPath(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") {
		return false
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." || part == "" {
			return false
		}
	}
	return true
}

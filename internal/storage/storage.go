package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PhotoStore persists uploaded donation photos and returns a reference
// (URL or path) to store on the donation record.
type PhotoStore interface {
	Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error)
}

// Photos is the process-wide store, selected at startup.
var Photos PhotoStore

// MaxPhotoSize caps uploads at 5MB.
const MaxPhotoSize = 5 << 20

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// AllowedContentType reports whether the upload MIME type is accepted.
func AllowedContentType(contentType string) bool {
	return allowedContentTypes[strings.ToLower(strings.TrimSpace(contentType))]
}

// NewObjectName builds a collision-free object name, keeping the
// original extension so the file stays recognizable.
func NewObjectName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.NewString() + ext
}

// Package storage stores uploaded images and returns their public URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"artisan_market/internal/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrNotImage is returned by DetectImage for content outside the accepted image types
var ErrNotImage = errors.New("not an accepted image type")

// imageExtensions maps every accepted detected type to the extension it is stored under
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Uploader stores one multipart file under path and returns a URL the client can load
type Uploader interface {
	UploadFile(ctx context.Context, file *multipart.FileHeader, path string) (string, error)
}

// New returns the uploader selected by cfg.StorageDriver
func New(ctx context.Context, cfg *config.Config) (Uploader, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return NewLocalStorage(cfg.LocalStoragePath, cfg.PublicBaseURL)
	case "s3":
		return NewS3Client(cfg.S3Region, cfg.S3Bucket)
	case "gcs":
		return NewGCSClient(ctx, cfg.GCSProjectID, cfg.GCSBucket, cfg.GCSCredentialsFile)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// DetectImage sniffs the uploaded bytes and returns the extension for their image type.
// The client's filename and part Content-Type are never consulted.
func DetectImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", err
	}
	ext, ok := imageExtensions[mt.String()]
	if !ok {
		return "", ErrNotImage
	}
	return ext, nil
}

// ObjectPath builds a collision-free object key under prefix ending in ext
func ObjectPath(prefix, ext string) string {
	return fmt.Sprintf("%s/%s/%s%s", prefix, time.Now().UTC().Format("2006/01"), uuid.NewString(), ext)
}

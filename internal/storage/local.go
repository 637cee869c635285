package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LocalStorage writes files below a directory served at baseURL
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStorage) UploadFile(ctx context.Context, file *multipart.FileHeader, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	fullPath := filepath.Join(s.basePath, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	if err := saveFile(fullPath, src); err != nil {
		return "", err
	}

	logrus.WithField("full_path", fullPath).Info("File stored")
	return s.baseURL + "/" + path, nil
}

// saveFile writes src to fullPath and removes the file again if the write fails
func saveFile(fullPath string, src io.Reader) error {
	dst, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	_, err = io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// Never leave a truncated file behind
		if rmErr := os.Remove(fullPath); rmErr != nil {
			logrus.WithError(rmErr).WithField("full_path", fullPath).Warn("Failed to remove partial file")
		}
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

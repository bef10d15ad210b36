// file: service/file_service.go

package service

import (
	"fmt"
	"go-book-api/logger"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileService stores poster images on the local filesystem under a single
// configured directory. Stored names are random, so uploads never collide
// or overwrite each other.
type FileService struct {
	dir string
}

func NewFileService(dir string) *FileService {
	return &FileService{dir: dir}
}

// Save writes the uploaded file to disk and returns the generated filename.
func (s *FileService) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create poster directory: %w", err)
	}

	filename := uuid.NewString() + filepath.Ext(header.Filename)

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create poster file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write poster file: %w", err)
	}

	logger.Log.WithField("filename", filename).Info("Stored poster file")
	return filename, nil
}

// Remove deletes a stored poster. Removal is best-effort: callers have
// already dropped the record the file belonged to, so failures are only
// logged. A missing file is not a failure.
func (s *FileService) Remove(filename string) {
	if filename == "" {
		return
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		logger.Log.WithField("filename", filename).WithError(err).Error("Failed to remove poster file")
	}
}

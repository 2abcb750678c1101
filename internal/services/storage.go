package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ResumeStorage persists uploaded resume files under the configured upload
// directory. Filenames are generated, never taken from the client.
type ResumeStorage interface {
	SaveResume(file *multipart.FileHeader) (filename string, path string, err error)
	Path(filename string) string
	Delete(filename string) error
	EnsureUploadDir() error
}

type resumeStorage struct {
	uploadPath string
}

func NewResumeStorage(uploadPath string) ResumeStorage {
	return &resumeStorage{uploadPath: uploadPath}
}

// EnsureUploadDir implements ResumeStorage.
func (s *resumeStorage) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// SaveResume implements ResumeStorage. Only PDF resumes are accepted.
func (s *resumeStorage) SaveResume(file *multipart.FileHeader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return "", "", fmt.Errorf("invalid file extension: %s", ext)
	}

	uniqueFilename := fmt.Sprintf("resume_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

// Path implements ResumeStorage.
func (s *resumeStorage) Path(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

// Delete implements ResumeStorage.
func (s *resumeStorage) Delete(filename string) error {
	if err := os.Remove(s.Path(filename)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

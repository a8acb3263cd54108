package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/zhanel/coursehub/internal/pkg/logger"
)

// LocalStorage handles saving attachment files to the local filesystem.
// The core only ever sees the metadata this layer produces.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // The base URL to access the stored files
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// StoredFile is the upload metadata handed to the attachment service.
type StoredFile struct {
	Filename string // Original filename as uploaded
	Path     string // Accessible path or URL of the stored copy
	Type     string // MIME-derived content type
	Size     int64  // Byte size
}

// SaveFile stores an uploaded file under a module-scoped subdirectory and
// returns its metadata. Stored copies get uuid names to prevent collisions.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return nil, fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	accessiblePath := dstPath
	if ls.baseURL != "" {
		accessiblePath = strings.TrimSuffix(ls.baseURL, "/") + "/"
		if subPath != "" {
			accessiblePath += strings.Trim(subPath, "/") + "/"
		}
		accessiblePath += uniqueFilename
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &StoredFile{
		Filename: fileHeader.Filename,
		Path:     accessiblePath,
		Type:     contentType,
		Size:     fileHeader.Size,
	}, nil
}

// DeleteFile removes a stored file by its accessible path. Missing files are
// not an error; the metadata row is the source of truth.
func (ls *LocalStorage) DeleteFile(accessiblePath string) error {
	fullPath := accessiblePath
	if !strings.HasPrefix(fullPath, ls.basePath) {
		relative := accessiblePath
		if ls.baseURL != "" && strings.HasPrefix(accessiblePath, ls.baseURL) {
			relative = strings.TrimPrefix(accessiblePath, strings.TrimSuffix(ls.baseURL, "/"))
		}
		relative = strings.TrimPrefix(relative, "/")
		fullPath = filepath.Join(ls.basePath, relative)
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete stored file %s: %w", fullPath, err)
	}
	return nil
}

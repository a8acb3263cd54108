package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base, "")
	require.NoError(t, err)

	stored, err := storage.SaveFile(uploadedFile(t, "notes.txt", "hello"), "modules/1")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", stored.Filename)
	assert.Equal(t, int64(5), stored.Size)
	assert.Equal(t, ".txt", filepath.Ext(stored.Path))

	// Stored under a uuid name, not the original one.
	assert.NotContains(t, stored.Path, "notes")

	content, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	require.NoError(t, storage.DeleteFile(stored.Path))
	_, err = os.Stat(stored.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_SaveFile_BaseURL(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base, "/uploads")
	require.NoError(t, err)

	stored, err := storage.SaveFile(uploadedFile(t, "slides.pdf", "pdf-bytes"), "modules/7")
	require.NoError(t, err)
	assert.Contains(t, stored.Path, "/uploads/modules/7/")

	// Delete resolves the URL back to the stored file.
	require.NoError(t, storage.DeleteFile(stored.Path))
}

func TestLocalStorage_SaveFile_NilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = storage.SaveFile(nil, "")
	assert.Error(t, err)
}

func TestLocalStorage_DeleteFile_Missing(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	// Missing files are tolerated.
	assert.NoError(t, storage.DeleteFile(filepath.Join("modules", "1", "gone.txt")))
}

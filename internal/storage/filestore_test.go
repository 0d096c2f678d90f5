package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

func diskPath(fs *FileStore, publicPath string) string {
	rel := strings.TrimPrefix(publicPath, PublicPrefix+"/")
	return filepath.Join(fs.BaseDir(), filepath.FromSlash(rel))
}

func TestFileStore_Save(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	path, err := fs.Save(uploadHeader(t, "photo.jpg", "image-bytes"), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, PublicPrefix+"/"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	data, err := os.ReadFile(diskPath(fs, path))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestFileStore_Save_TreeSubdir(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	path, err := fs.Save(uploadHeader(t, "tree.png", "x"), TreeSubdir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, PublicPrefix+"/"+TreeSubdir+"/"))

	_, err = os.Stat(diskPath(fs, path))
	assert.NoError(t, err)
}

func TestFileStore_Replace_RemovesOldFile(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	oldPath, err := fs.Save(uploadHeader(t, "old.jpg", "old"), "")
	require.NoError(t, err)

	newPath, err := fs.Replace(oldPath, uploadHeader(t, "new.jpg", "new"), "")
	require.NoError(t, err)
	assert.NotEqual(t, oldPath, newPath)

	_, err = os.Stat(diskPath(fs, oldPath))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(diskPath(fs, newPath))
	assert.NoError(t, err)
}

func TestFileStore_Replace_MissingOldFile(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	// A dangling reference must not fail the replace.
	path, err := fs.Replace(PublicPrefix+"/gone.jpg", uploadHeader(t, "new.jpg", "new"), "")
	require.NoError(t, err)
	_, err = os.Stat(diskPath(fs, path))
	assert.NoError(t, err)
}

func TestFileStore_Remove_BestEffort(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	// Neither an empty path nor a missing file should panic or error out.
	fs.Remove("")
	fs.Remove(PublicPrefix + "/never-existed.jpg")
}

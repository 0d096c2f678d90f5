package storage

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix under which stored files are served.
const PublicPrefix = "/public"

// TreeSubdir is the subdirectory for tree photos; all other uploads go to
// the public root.
const TreeSubdir = "tree"

// FileStore persists uploaded images under a local public directory and
// removes superseded files. File operations are not atomic with the
// database writes that reference them; a crash between the two can leave
// an orphaned file or a dangling path, which is accepted at this scale.
type FileStore struct {
	baseDir string
}

// NewFileStore builds a FileStore rooted at baseDir, creating the
// directory tree if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, TreeSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Save writes the uploaded file under subdir ("" for the public root) with
// a generated collision-free name and returns the public-relative path to
// record on the owning entity.
func (fs *FileStore) Save(file *multipart.FileHeader, subdir string) (string, error) {
	name := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.NewString(), filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(fs.baseDir, subdir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if subdir == "" {
		return PublicPrefix + "/" + name, nil
	}
	return PublicPrefix + "/" + subdir + "/" + name, nil
}

// Replace stores the new file, then removes the file at oldPath. The old
// file may already be gone; its removal must never fail the update.
func (fs *FileStore) Replace(oldPath string, file *multipart.FileHeader, subdir string) (string, error) {
	path, err := fs.Save(file, subdir)
	if err != nil {
		return "", err
	}
	fs.Remove(oldPath)
	return path, nil
}

// Remove deletes the file at the given public-relative path, best effort.
func (fs *FileStore) Remove(path string) {
	if path == "" {
		return
	}
	rel := strings.TrimPrefix(path, PublicPrefix+"/")
	if err := os.Remove(filepath.Join(fs.baseDir, filepath.FromSlash(rel))); err != nil {
		log.Printf("filestore: remove %s: %v", path, err)
	}
}

// BaseDir returns the on-disk root served under PublicPrefix.
func (fs *FileStore) BaseDir() string {
	return fs.baseDir
}

// Package upload stores course content files on local disk. Videos land in
// uploads/videos, everything else in uploads/files, always under a
// randomized name.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxBodySize bounds a content upload request.
const MaxBodySize = "300M"

var allowedTypes = map[string]struct{}{
	"application/pdf":    {},
	"video/mp4":          {},
	"image/jpeg":         {},
	"image/png":          {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

func Allowed(mimeType string) bool {
	_, ok := allowedTypes[mimeType]
	return ok
}

type Store struct {
	BaseDir string
}

type Stored struct {
	// Path is the absolute location on disk, URL the path the static route
	// serves it under.
	Path    string
	URL     string
	DocType string
}

func subdir(mimeType string) string {
	if strings.HasPrefix(mimeType, "video") {
		return "videos"
	}
	return "files"
}

// Save writes the uploaded file to disk. Callers must Remove the result if
// the accompanying database write fails, so no orphaned blobs remain.
func (s *Store) Save(file *multipart.FileHeader, mimeType string) (*Stored, error) {
	if !Allowed(mimeType) {
		return nil, fmt.Errorf("file type %q not allowed", mimeType)
	}

	dir := filepath.Join(s.BaseDir, subdir(mimeType))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return nil, err
	}

	return &Stored{
		Path:    dst,
		URL:     "/uploads/" + subdir(mimeType) + "/" + name,
		DocType: strings.SplitN(mimeType, "/", 2)[0],
	}, nil
}

// Remove deletes a stored file, tolerating one that is already gone.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveByURL resolves a served URL back to its on-disk path and removes it.
// Used when a course is deleted.
func (s *Store) RemoveByURL(url string) error {
	rel, ok := strings.CutPrefix(url, "/uploads/")
	if !ok {
		return nil
	}
	return s.Remove(filepath.Join(s.BaseDir, filepath.FromSlash(rel)))
}

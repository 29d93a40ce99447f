package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CertificateStore writes uploaded compliance certificates to a local
// directory. Stored names are timestamp-prefixed so repeated uploads of
// the same file never clash in practice; nothing else is tracked in the
// database, the directory itself is the source of truth.
type CertificateStore struct {
	root string
}

type StoredFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func NewCertificateStore(root string) (*CertificateStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create certificate dir: %w", err)
	}
	return &CertificateStore{root: root}, nil
}

// Save streams the upload to disk under "<unixmilli>-<original name>"
// and returns the stored path. Path separators in the client-supplied
// name are flattened first.
func (s *CertificateStore) Save(originalName string, src io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitize(originalName))
	path := filepath.Join(s.root, name)

	dst, err := os.Create(path)

	if err != nil {
		return "", err
	}

	_, err = io.Copy(dst, src)

	if cerr := dst.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		// don't leave a truncated file behind
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// List enumerates stored certificates and maps each to its public URL.
func (s *CertificateStore) List() ([]StoredFile, error) {
	entries, err := os.ReadDir(s.root)

	if err != nil {
		return nil, err
	}

	out := make([]StoredFile, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		out = append(out, StoredFile{
			Name: e.Name(),
			Path: "/uploads/certificates/" + e.Name(),
		})
	}
	return out, nil
}

// Resolve maps a requested filename to its on-disk path. Only the base
// name is honoured, so a traversal attempt cannot escape the root.
func (s *CertificateStore) Resolve(filename string) (string, error) {
	name := filepath.Base(filename)

	if name == "." || name == string(filepath.Separator) {
		return "", os.ErrNotExist
	}

	path := filepath.Join(s.root, name)

	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *CertificateStore) Root() string {
	return s.root
}

func sanitize(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	return filepath.Base(name)
}

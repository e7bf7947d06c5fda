package storage

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yungbote/studio-publisher/internal/pkg/logger"
)

// BlobStore resolves checksum-addressed blobs. Identity is the md5 hex of
// the content, so two uploads of the same bytes share one blob.
type BlobStore interface {
	Read(checksum, ext string) ([]byte, error)
	Write(data []byte, ext string) (checksum string, size int64, err error)
	Path(checksum, ext string) string
}

type localBlobStore struct {
	root string
	log  *logger.Logger
}

func NewLocalBlobStore(root string, baseLog *logger.Logger) BlobStore {
	return &localBlobStore{root: root, log: baseLog.With("service", "BlobStore")}
}

// Path fans blobs out over two directory levels keyed by the leading
// checksum characters.
func (s *localBlobStore) Path(checksum, ext string) string {
	return filepath.Join(s.root, checksum[:1], checksum[1:2], checksum+"."+ext)
}

func (s *localBlobStore) Read(checksum, ext string) ([]byte, error) {
	path := s.Path(checksum, ext)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read blob %s: %w", path, err)
	}
	return data, nil
}

func (s *localBlobStore) Write(data []byte, ext string) (string, int64, error) {
	sum := md5.Sum(data)
	checksum := hex.EncodeToString(sum[:])

	path := s.Path(checksum, ext)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", 0, fmt.Errorf("could not create blob directory for %s: %w", path, err)
	}
	if _, err := os.Stat(path); err == nil {
		// Content-addressed: identical bytes are already on disk.
		return checksum, int64(len(data)), nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", 0, fmt.Errorf("could not write blob %s: %w", path, err)
	}
	s.log.Debug("Wrote blob", "checksum", checksum, "size", len(data))
	return checksum, int64(len(data)), nil
}

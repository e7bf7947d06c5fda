package storage

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/yungbote/studio-publisher/internal/pkg/logger"
)

func TestBlobStoreRoundTrip(t *testing.T) {
	store := NewLocalBlobStore(t.TempDir(), logger.NewNop())

	content := []byte("some blob content")
	checksum, size, err := store.Write(content, "png")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	sum := md5.Sum(content)
	if checksum != hex.EncodeToString(sum[:]) {
		t.Fatalf("checksum = %s, want md5 of content", checksum)
	}
	if size != int64(len(content)) {
		t.Fatalf("size = %d, want %d", size, len(content))
	}

	got, err := store.Read(checksum, "png")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("Read returned %q", got)
	}
}

func TestBlobStorePathFanout(t *testing.T) {
	root := t.TempDir()
	store := NewLocalBlobStore(root, logger.NewNop())
	path := store.Path("abcdef", "svg")
	want := filepath.Join(root, "a", "b", "abcdef.svg")
	if path != want {
		t.Fatalf("Path = %s, want %s", path, want)
	}
}

func TestBlobStoreWriteIdempotent(t *testing.T) {
	store := NewLocalBlobStore(t.TempDir(), logger.NewNop())
	content := []byte("same bytes")

	first, _, err := store.Write(content, "png")
	if err != nil {
		t.Fatalf("first Write: %v", err)
	}
	second, _, err := store.Write(content, "png")
	if err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if first != second {
		t.Fatalf("checksums differ: %s vs %s", first, second)
	}
}

func TestBlobStoreReadMissing(t *testing.T) {
	store := NewLocalBlobStore(t.TempDir(), logger.NewNop())
	if _, err := store.Read("0123456789abcdef0123456789abcdef", "png"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing blob error = %v", err)
	}
}

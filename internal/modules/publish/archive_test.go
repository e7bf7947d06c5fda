package publish

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func buildBundle(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	b := newBundleWriter()
	// Fixed insertion order keeps the two builds comparable.
	for _, name := range []string{"exercise.json", "images/a.png", "item.json"} {
		if content, ok := entries[name]; ok {
			if err := b.add(name, content); err != nil {
				t.Fatalf("add %s: %v", name, err)
			}
		}
	}
	data, err := b.finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	return data
}

func TestBundleDeterministic(t *testing.T) {
	entries := map[string][]byte{
		"exercise.json": []byte(`{"mastery_model": "m_of_n"}`),
		"images/a.png":  {0x89, 0x50, 0x4e, 0x47},
		"item.json":     []byte(`{"question":{}}`),
	}
	first := buildBundle(t, entries)
	second := buildBundle(t, entries)
	if !bytes.Equal(first, second) {
		t.Fatalf("identical content produced different archives")
	}
}

func TestBundleEntriesStoredWithFixedHeader(t *testing.T) {
	data := buildBundle(t, map[string][]byte{"exercise.json": []byte("{}")})
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	if len(r.File) != 1 {
		t.Fatalf("want 1 entry, got %d", len(r.File))
	}
	f := r.File[0]
	if f.Method != zip.Store {
		t.Fatalf("entry is compressed, want stored")
	}
	if f.Comment != bundleComment {
		t.Fatalf("comment = %q", f.Comment)
	}
	if !f.Modified.UTC().Equal(bundleStamp) {
		t.Fatalf("timestamp = %v, want %v", f.Modified.UTC(), bundleStamp)
	}
}

func TestBundleDedupsRepeatedEntries(t *testing.T) {
	b := newBundleWriter()
	if err := b.add("images/a.png", []byte("first")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := b.add("images/a.png", []byte("second")); err != nil {
		t.Fatalf("repeated add: %v", err)
	}
	if !b.has("images/a.png") {
		t.Fatalf("has should report the written entry")
	}
	data, err := b.finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	if len(r.File) != 1 {
		t.Fatalf("want 1 entry after dedup, got %d", len(r.File))
	}
	rc, err := r.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if string(content) != "first" {
		t.Fatalf("entry content = %q, the first write should win", content)
	}
}

package publish

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// Bundle archives must hash identically across regenerations of identical
// content, so every entry gets the same timestamp and comment and is stored
// uncompressed.
var bundleStamp = time.Date(2013, 3, 14, 1, 59, 26, 0, time.UTC)

const bundleComment = "Perseus file generated during export process"

// bundleWriter wraps a zip writer with entry dedup and the fixed header
// policy.
type bundleWriter struct {
	buf     bytes.Buffer
	zw      *zip.Writer
	written map[string]bool
}

func newBundleWriter() *bundleWriter {
	b := &bundleWriter{written: map[string]bool{}}
	b.zw = zip.NewWriter(&b.buf)
	return b
}

func (b *bundleWriter) has(name string) bool {
	return b.written[name]
}

// add writes one entry. Repeated adds of the same name are ignored so an
// image referenced from several items lands in the archive exactly once.
func (b *bundleWriter) add(name string, content []byte) error {
	if b.written[name] {
		return nil
	}
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Store,
		Comment:  bundleComment,
		Modified: bundleStamp,
	}
	w, err := b.zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("could not create archive entry %s: %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("could not write archive entry %s: %w", name, err)
	}
	b.written[name] = true
	return nil
}

func (b *bundleWriter) finish() ([]byte, error) {
	if err := b.zw.Close(); err != nil {
		return nil, fmt.Errorf("could not finalize archive: %w", err)
	}
	return b.buf.Bytes(), nil
}

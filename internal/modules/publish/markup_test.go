package publish

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/yungbote/studio-publisher/internal/pkg/logger"
	"github.com/yungbote/studio-publisher/internal/storage"
	"github.com/yungbote/studio-publisher/internal/types"
)

func TestUnwrapFormulas(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`before $$x^2$$ after`, `before $x^2$ after`},
		{`$$a$$ and $$b$$`, `$a$ and $b$`},
		{`inline $x$ untouched`, `inline $x$ untouched`},
		{`no math at all`, `no math at all`},
	}
	for _, tc := range cases {
		if got := unwrapFormulas(tc.in); got != tc.want {
			t.Fatalf("unwrapFormulas(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractValue(t *testing.T) {
	if v := extractValue("42"); v != 42.0 {
		t.Fatalf("extractValue(42) = %v", v)
	}
	if v := extractValue("about -3.5 meters"); v != -3.5 {
		t.Fatalf("extractValue(-3.5) = %v", v)
	}
	if v := extractValue("0"); v != 0.0 {
		t.Fatalf("extractValue(0) = %v", v)
	}
	if v := extractValue("no numbers"); v != nil {
		t.Fatalf("extractValue(no numbers) = %v, want nil", v)
	}
}

func TestKeepAnswer(t *testing.T) {
	if keepAnswer(nil) {
		t.Fatalf("nil should be dropped")
	}
	if keepAnswer("") {
		t.Fatalf("empty string should be dropped")
	}
	if !keepAnswer(0.0) {
		t.Fatalf("numeric zero is a real answer")
	}
	if !keepAnswer("0") {
		t.Fatalf("textual zero is a real answer")
	}
}

func newBlobMapper(t *testing.T) *mapper {
	t.Helper()
	log := logger.NewNop()
	p := &Publisher{
		log:   log,
		blobs: storage.NewLocalBlobStore(t.TempDir(), log),
	}
	return &mapper{p: p, log: log, created: map[string]string{}}
}

func TestProcessImagesRewritesAndEmbeds(t *testing.T) {
	m := newBlobMapper(t)
	blob := []byte("png bytes")
	checksum, _, err := m.p.blobs.Write(blob, types.FormatPNG)
	if err != nil {
		t.Fatalf("seed blob: %v", err)
	}

	bundle := newBundleWriter()
	content := "Look: ![alt](" + types.ContentStoragePlaceholder + "/" + checksum + ".png =120x80)"
	out, images, err := m.processImages(content, bundle)
	if err != nil {
		t.Fatalf("processImages: %v", err)
	}

	wantPath := perseusImageDir + "/" + checksum + ".png"
	if !strings.Contains(out, "]("+wantPath+")") {
		t.Fatalf("output %q does not reference %q", out, wantPath)
	}
	if strings.Contains(out, "=120x80") {
		t.Fatalf("sizing suffix not stripped: %q", out)
	}
	if len(images) != 1 {
		t.Fatalf("want one descriptor, got %d", len(images))
	}
	if images[0].Width != 120 || images[0].Height != 80 {
		t.Fatalf("descriptor = %+v", images[0])
	}
	if images[0].Name != wantPath {
		t.Fatalf("descriptor name = %q, want %q", images[0].Name, wantPath)
	}

	data, err := bundle.finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	if len(r.File) != 1 || r.File[0].Name != "images/"+checksum+".png" {
		t.Fatalf("bundle entries: %v", r.File)
	}
}

func TestProcessImagesWithoutSizing(t *testing.T) {
	m := newBlobMapper(t)
	checksum, _, err := m.p.blobs.Write([]byte("svg bytes"), types.FormatSVG)
	if err != nil {
		t.Fatalf("seed blob: %v", err)
	}

	bundle := newBundleWriter()
	content := "![](" + types.ContentStoragePlaceholder + "/" + checksum + ".svg)"
	out, images, err := m.processImages(content, bundle)
	if err != nil {
		t.Fatalf("processImages: %v", err)
	}
	if len(images) != 0 {
		t.Fatalf("unsized references produce no descriptors, got %+v", images)
	}
	if !strings.Contains(out, perseusImageDir+"/"+checksum+".svg") {
		t.Fatalf("output %q missing rewritten path", out)
	}
}

func TestProcessImagesMissingBlob(t *testing.T) {
	m := newBlobMapper(t)
	bundle := newBundleWriter()
	content := "![](" + types.ContentStoragePlaceholder + "/0123456789abcdef0123456789abcdef.png)"
	if _, _, err := m.processImages(content, bundle); err == nil {
		t.Fatalf("missing blob should fail the rewrite")
	}
}

package publish

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/yungbote/studio-publisher/internal/types"
)

// perseusImageDir is the bundle-local directory item markup points into
// after the storage placeholder is rewritten.
var perseusImageDir = types.ImagePlaceholder + "/images"

var (
	formulaPattern   = regexp.MustCompile(`\$(\$[^$]+\$)\$`)
	imageRefPattern  = regexp.MustCompile(`!\[[^\]]*]\(([^)]+)\)`)
	imagePathPattern = regexp.MustCompile(`(.+/images/[^\s]+?)(?: =([0-9.]+)x([0-9.]+))?$`)
	numberPattern    = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+`)
)

// imageDescriptor carries explicit sizing parsed from a "=WxH" suffix on an
// inline image reference.
type imageDescriptor struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// unwrapFormulas rewrites display-math $$...$$ spans to inline $...$ form.
func unwrapFormulas(content string) string {
	return formulaPattern.ReplaceAllString(content, "$1")
}

// processImages rewrites inline image references to the bundle-local path,
// embeds each referenced blob into the bundle once, and collects explicit
// sizing descriptors.
func (m *mapper) processImages(content string, bundle *bundleWriter) (string, []imageDescriptor, error) {
	images := []imageDescriptor{}
	content = strings.ReplaceAll(content, types.ContentStoragePlaceholder, perseusImageDir)

	for _, ref := range imageRefPattern.FindAllStringSubmatch(content, -1) {
		pathMatch := imagePathPattern.FindStringSubmatch(ref[1])
		if pathMatch == nil {
			continue
		}
		filename := path.Base(pathMatch[1])
		ext := strings.TrimPrefix(path.Ext(filename), ".")
		checksum := strings.TrimSuffix(filename, path.Ext(filename))

		entryName := "images/" + checksum + "." + ext
		if !bundle.has(entryName) {
			blob, err := m.p.blobs.Read(checksum, ext)
			if err != nil {
				return "", nil, fmt.Errorf("could not embed image %s: %w", filename, err)
			}
			if err := bundle.add(entryName, blob); err != nil {
				return "", nil, err
			}
		}

		if pathMatch[2] != "" && pathMatch[3] != "" {
			width, _ := strconv.ParseFloat(pathMatch[2], 64)
			height, _ := strconv.ParseFloat(pathMatch[3], 64)
			images = append(images, imageDescriptor{Name: pathMatch[1], Width: width, Height: height})
		}
		// Strip the sizing suffix from the rendered markup.
		content = strings.Replace(content, ref[1], pathMatch[1], 1)
	}

	return content, images, nil
}

// extractValue pulls the first numeric value out of an input-question
// answer. Returns nil when there is none.
func extractValue(answer string) interface{} {
	match := numberPattern.FindString(answer)
	if match == "" {
		return nil
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return value
}

// keepAnswer drops empty answers from the output, except the literal
// numeric value 0, which is a real answer.
func keepAnswer(answer interface{}) bool {
	switch v := answer.(type) {
	case nil:
		return false
	case string:
		return v != ""
	default:
		return true
	}
}

package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"path"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"
	"gorm.io/gorm"

	"github.com/yungbote/studio-publisher/internal/types"
)

// thumbnailDimension is the square size channel icons are normalized to.
const thumbnailDimension = 128

// convertChannelThumbnail resolves the channel's thumbnail into a base64
// data URI, cover-cropped to thumbnailDimension. The result is cached on the
// channel and reused by later publishes until cleared.
func (p *Publisher) convertChannelThumbnail(ctx context.Context, tx *gorm.DB, channel *types.Channel) (string, error) {
	if channel.Thumbnail == "" || strings.Contains(channel.Thumbnail, "static") {
		return "", nil
	}

	if len(channel.ThumbnailEncoding) > 0 {
		var encoding thumbnailEncoding
		if err := json.Unmarshal(channel.ThumbnailEncoding, &encoding); err == nil && encoding.Base64 != "" {
			return encoding.Base64, nil
		}
	}
	if channel.IconEncoding != "" {
		return channel.IconEncoding, nil
	}

	raw, err := p.loadThumbnailSource(ctx, channel.Thumbnail)
	if err != nil {
		return "", err
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("could not decode channel thumbnail %s: %w", channel.Thumbnail, err)
	}

	cover := resizeCover(src, thumbnailDimension)
	var buf bytes.Buffer
	if err := png.Encode(&buf, cover); err != nil {
		return "", fmt.Errorf("could not encode channel thumbnail: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (p *Publisher) loadThumbnailSource(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("could not fetch channel thumbnail %s: %w", ref, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("could not fetch channel thumbnail %s: status %d", ref, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	ext := strings.TrimPrefix(path.Ext(ref), ".")
	checksum := strings.TrimSuffix(path.Base(ref), path.Ext(ref))
	return p.blobs.Read(checksum, ext)
}

// resizeCover center-crops the source to a square and scales it to dim.
func resizeCover(src image.Image, dim int) image.Image {
	bounds := src.Bounds()
	side := bounds.Dx()
	if bounds.Dy() < side {
		side = bounds.Dy()
	}
	x0 := bounds.Min.X + (bounds.Dx()-side)/2
	y0 := bounds.Min.Y + (bounds.Dy()-side)/2

	dst := image.NewRGBA(image.Rect(0, 0, dim, dim))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, image.Rect(x0, y0, x0+side, y0+side), draw.Over, nil)
	return dst
}

package publish

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/yungbote/studio-publisher/internal/exportschema"
	apperrors "github.com/yungbote/studio-publisher/internal/pkg/errors"
	"github.com/yungbote/studio-publisher/internal/types"
)

// thumbnailEncoding is the inline payload editors attach to nodes and
// channels.
type thumbnailEncoding struct {
	Base64 string `json:"base64"`
}

// decodeDataURI decodes a base64 payload, tolerating an optional
// "data:...;base64," prefix.
func decodeDataURI(encoded string) ([]byte, error) {
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("could not decode inline thumbnail: %w", err)
	}
	return data, nil
}

// materializeNodeFiles creates export File rows for the node's attached
// blobs. Exercise image presets are skipped here; the bundler owns them.
func (m *mapper) materializeNodeFiles(ctx context.Context, node *types.ContentNode, targetNodeID string) error {
	files, err := m.p.files.ForNodeExcludingPresets(ctx, m.tx, node.ID, []string{
		types.PresetExerciseImage,
		types.PresetExerciseGraphie,
	})
	if err != nil {
		return fmt.Errorf("could not load files for node %s: %w", node.ID, err)
	}

	for _, file := range files {
		preset, ok := types.PresetByID(file.PresetID)
		if !ok {
			return fmt.Errorf("%w: unknown preset %q on file %s", apperrors.ErrMissingReference, file.PresetID, file.ID)
		}
		if file.Language != nil {
			if _, err := m.getOrCreateLanguage(ctx, file.Language); err != nil {
				return err
			}
		}

		source := file
		if preset.Thumbnail && len(node.ThumbnailEncoding) > 0 {
			// Inline thumbnails are materialized fresh rather than reusing
			// the stored blob.
			fresh, err := m.createInlineThumbnail(ctx, node, file)
			if err != nil {
				return err
			}
			if fresh != nil {
				source = fresh
			}
		}

		record := &exportschema.File{
			ID:            source.ID,
			Checksum:      source.Checksum,
			Extension:     source.FileFormat,
			Available:     true,
			FileSize:      source.FileSize,
			ContentNodeID: targetNodeID,
			Preset:        file.PresetID,
			Supplementary: preset.Supplementary,
			LangID:        source.LanguageID,
			Thumbnail:     preset.Thumbnail,
			Priority:      preset.Order,
		}
		if err := m.target.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(record).Error; err != nil {
			return fmt.Errorf("could not create export file %s: %w", source.ID, err)
		}
	}
	return nil
}

func (m *mapper) createInlineThumbnail(ctx context.Context, node *types.ContentNode, original *types.File) (*types.File, error) {
	var encoding thumbnailEncoding
	if err := json.Unmarshal(node.ThumbnailEncoding, &encoding); err != nil || encoding.Base64 == "" {
		return nil, nil
	}
	data, err := decodeDataURI(encoding.Base64)
	if err != nil {
		return nil, err
	}
	checksum, size, err := m.p.blobs.Write(data, original.FileFormat)
	if err != nil {
		return nil, fmt.Errorf("could not store inline thumbnail for node %s: %w", node.ID, err)
	}
	fresh := &types.File{
		ID:               types.NewID(),
		Checksum:         checksum,
		FileFormat:       original.FileFormat,
		PresetID:         original.PresetID,
		FileSize:         size,
		LanguageID:       original.LanguageID,
		OriginalFilename: original.OriginalFilename,
		UploadedByID:     original.UploadedByID,
	}
	if err := m.p.files.Create(ctx, m.tx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

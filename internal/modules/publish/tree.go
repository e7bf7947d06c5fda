package publish

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/studio-publisher/internal/exportschema"
	apperrors "github.com/yungbote/studio-publisher/internal/pkg/errors"
	"github.com/yungbote/studio-publisher/internal/pkg/logger"
	"github.com/yungbote/studio-publisher/internal/types"
)

// mapper walks one editorial tree into one export database. The target
// handle is carried explicitly; nothing here relies on ambient state.
type mapper struct {
	p           *Publisher
	tx          *gorm.DB // editorial store transaction
	target      *gorm.DB // export database
	opts        Options
	defaultLang *types.Language
	log         *logger.Logger

	// editorial node id -> export node id, for parent linkage. BFS order
	// guarantees parents are recorded before their children are mapped.
	created map[string]string
}

func newMapper(p *Publisher, tx, target *gorm.DB, opts Options, defaultLang *types.Language, log *logger.Logger) *mapper {
	return &mapper{
		p:           p,
		tx:          tx,
		target:      target,
		opts:        opts,
		defaultLang: defaultLang,
		log:         log,
		created:     map[string]string{},
	}
}

// mapTags copies the channel's tag vocabulary into the export database.
func (m *mapper) mapTags(ctx context.Context, channel *types.Channel) error {
	tags, err := m.p.tags.ForChannel(ctx, m.tx, channel.ID)
	if err != nil {
		return fmt.Errorf("could not load tags for channel %s: %w", channel.ID, err)
	}
	for _, tag := range tags {
		record := &exportschema.ContentTag{ID: tag.ID, TagName: tag.TagName}
		if err := m.target.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(record).Error; err != nil {
			return fmt.Errorf("could not create export tag %s: %w", tag.ID, err)
		}
	}
	m.log.Debug("Mapped channel tags", "count", len(tags))
	return nil
}

// mapChannel converts the channel thumbnail and writes the single channel
// metadata row of the export database.
func (m *mapper) mapChannel(ctx context.Context, channel *types.Channel, root *types.ContentNode) error {
	icon, err := m.p.convertChannelThumbnail(ctx, m.tx, channel)
	if err != nil {
		return err
	}
	channel.IconEncoding = icon

	metadata := &exportschema.ChannelMetadata{
		ID:          channel.ID,
		Name:        channel.Name,
		Description: channel.Description,
		Version:     channel.Version,
		Thumbnail:   icon,
		RootPk:      root.NodeID,
	}
	if err := m.target.WithContext(ctx).Create(metadata).Error; err != nil {
		return fmt.Errorf("could not create channel metadata for %s: %w", channel.ID, err)
	}
	m.log.Debug("Generated channel metadata", "channel_id", channel.ID)
	return nil
}

// mapTree walks the tree breadth-first so every parent's export record
// exists before its children reference it. Topics with no playable
// descendants are pruned together with their subtrees.
func (m *mapper) mapTree(ctx context.Context, root *types.ContentNode) error {
	m.p.nodes.BeginBulkUpdates()
	walkErr := m.walk(ctx, root)
	if endErr := m.p.nodes.EndBulkUpdates(ctx, m.tx, root.ID); endErr != nil && walkErr == nil {
		walkErr = endErr
	}
	return walkErr
}

func (m *mapper) walk(ctx context.Context, root *types.ContentNode) error {
	queue := []*types.ContentNode{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		m.log.Debug("Mapping node", "id", node.ID, "kind", node.Kind)

		available, err := m.p.nodes.HasNonTopicDescendant(ctx, m.tx, node.ID)
		if err != nil {
			return err
		}
		if !available {
			// Empty topic: nothing below it is playable, skip the subtree.
			continue
		}

		children, err := m.p.nodes.Children(ctx, m.tx, node.ID)
		if err != nil {
			return err
		}
		queue = append(queue, children...)

		targetNode, err := m.createBareNode(ctx, node, available)
		if err != nil {
			return err
		}

		if node.Kind == types.KindExercise {
			exerciseData, items, err := m.processAssessmentMetadata(ctx, node)
			if err != nil {
				return err
			}
			regenerate := m.opts.ForceExercises || node.Changed
			if !regenerate {
				exists, err := m.p.files.ExistsForNode(ctx, m.tx, node.ID, types.PresetExercise)
				if err != nil {
					return err
				}
				regenerate = !exists
			}
			if regenerate {
				if err := m.createPerseusExercise(ctx, node, exerciseData, items); err != nil {
					return err
				}
			}
		}

		if err := m.materializeNodeFiles(ctx, node, targetNode.ID); err != nil {
			return err
		}
		if err := m.mapNodeTags(ctx, node, targetNode.ID); err != nil {
			return err
		}
	}
	return nil
}

func (m *mapper) createBareNode(ctx context.Context, node *types.ContentNode, available bool) (*exportschema.ContentNode, error) {
	var licenseID *string
	if node.LicenseID != nil {
		license := node.License
		if license == nil {
			var err error
			license, err = m.p.licenses.GetByID(ctx, m.tx, *node.LicenseID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: license %s on node %s", apperrors.ErrMissingReference, *node.LicenseID, node.ID)
				}
				return nil, err
			}
		}
		targetLicense, err := m.getOrCreateLicense(ctx, node, license)
		if err != nil {
			return nil, err
		}
		licenseID = &targetLicense.ID
	}

	// Node language wins, then the channel default; neither set means a
	// null language on the export record.
	lang := node.Language
	if lang == nil && node.LanguageID != nil {
		var err error
		lang, err = m.p.languages.GetByID(ctx, m.tx, *node.LanguageID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: language %s on node %s", apperrors.ErrMissingReference, *node.LanguageID, node.ID)
			}
			return nil, err
		}
	}
	if lang == nil {
		lang = m.defaultLang
	}
	var langID *string
	if lang != nil {
		targetLang, err := m.getOrCreateLanguage(ctx, lang)
		if err != nil {
			return nil, err
		}
		langID = &targetLang.ID
	}

	var parentID *string
	if node.ParentID != nil {
		mapped, ok := m.created[*node.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: parent %s of node %s has no export record", apperrors.ErrMissingReference, *node.ParentID, node.ID)
		}
		parentID = &mapped
	}

	record := &exportschema.ContentNode{
		ID:           node.NodeID,
		ParentID:     parentID,
		Kind:         node.Kind,
		Title:        node.Title,
		Description:  node.Description,
		Author:       node.Author,
		SortOrder:    node.SortOrder,
		LicenseOwner: node.CopyrightHolder,
		ContentID:    node.ContentID,
		Available:    available,
		LicenseID:    licenseID,
		LangID:       langID,
	}
	if err := m.target.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(record).Error; err != nil {
		return nil, fmt.Errorf("could not create export node %s: %w", node.NodeID, err)
	}
	m.created[node.ID] = record.ID
	return record, nil
}

// getOrCreateLicense reuses an export license by name and description. A
// custom source license carries its description on the node instead.
func (m *mapper) getOrCreateLicense(ctx context.Context, node *types.ContentNode, license *types.License) (*exportschema.License, error) {
	description := license.LicenseDescription
	if license.IsCustom {
		description = node.LicenseDescription
	}

	var record exportschema.License
	err := m.target.WithContext(ctx).
		Where("license_name = ? AND license_description = ?", license.LicenseName, description).
		First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record = exportschema.License{
		ID:                 types.NewID(),
		LicenseName:        license.LicenseName,
		LicenseDescription: description,
	}
	if err := m.target.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("could not create export license %s: %w", license.LicenseName, err)
	}
	return &record, nil
}

func (m *mapper) getOrCreateLanguage(ctx context.Context, lang *types.Language) (*exportschema.Language, error) {
	record := exportschema.Language{ID: lang.ID}
	err := m.target.WithContext(ctx).
		Where(exportschema.Language{ID: lang.ID}).
		Attrs(exportschema.Language{
			LangCode:    lang.LangCode,
			LangSubcode: lang.LangSubcode,
			LangName:    lang.DisplayName(),
		}).
		FirstOrCreate(&record).Error
	if err != nil {
		return nil, fmt.Errorf("could not create export language %s: %w", lang.ID, err)
	}
	return &record, nil
}

func (m *mapper) mapNodeTags(ctx context.Context, node *types.ContentNode, targetNodeID string) error {
	tags, err := m.p.tags.ForNode(ctx, m.tx, node.ID)
	if err != nil {
		return err
	}
	for _, tag := range tags {
		err := m.target.WithContext(ctx).Exec(
			`INSERT OR IGNORE INTO contentnode_tag (content_node_id, content_tag_id) VALUES (?, ?)`,
			targetNodeID, tag.ID,
		).Error
		if err != nil {
			return fmt.Errorf("could not tag export node %s: %w", targetNodeID, err)
		}
	}
	return nil
}

// mapPrerequisites records prerequisite edges between export nodes. An edge
// whose target or prerequisite was pruned (or lives outside the tree) has no
// export record to point at and is skipped, so the export database never
// carries dangling references.
func (m *mapper) mapPrerequisites(ctx context.Context, root *types.ContentNode) error {
	pairs, err := m.p.prereqs.ForFamily(ctx, m.tx, root.ID)
	if err != nil {
		return err
	}
	mapped := make(map[string]bool, len(m.created))
	for _, nodeID := range m.created {
		mapped[nodeID] = true
	}
	for _, pair := range pairs {
		if !mapped[pair.TargetNodeID] || !mapped[pair.PrerequisiteID] {
			continue
		}
		err := m.target.WithContext(ctx).Exec(
			`INSERT OR IGNORE INTO contentnode_has_prerequisite (contentnode_id, prerequisite_id) VALUES (?, ?)`,
			pair.TargetNodeID, pair.PrerequisiteID,
		).Error
		if err != nil {
			return fmt.Errorf("could not map prerequisite %s -> %s: %w", pair.PrerequisiteID, pair.TargetNodeID, err)
		}
	}
	return nil
}

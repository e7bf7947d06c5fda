package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/studio-publisher/internal/pkg/logger"
	"github.com/yungbote/studio-publisher/internal/types"
)

// familyCTE selects a node and all of its descendants. Works on both
// postgres and sqlite.
const familyCTE = `WITH RECURSIVE family(id) AS (
	SELECT id FROM contentnode WHERE id = ?
	UNION ALL
	SELECT c.id FROM contentnode c JOIN family f ON c.parent_id = f.id
)`

type ContentNodeRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.ContentNode, error)
	Children(ctx context.Context, tx *gorm.DB, parentID string) ([]*types.ContentNode, error)
	FamilyHasChanges(ctx context.Context, tx *gorm.DB, rootID string) (bool, error)
	HasNonTopicDescendant(ctx context.Context, tx *gorm.DB, nodeID string) (bool, error)
	PublishedDescendants(ctx context.Context, tx *gorm.DB, rootID string) ([]*types.ContentNode, error)
	MarkFamilyPublished(ctx context.Context, tx *gorm.DB, rootID string) error

	// BeginBulkUpdates suspends denormalized tree maintenance (the level
	// column) for the duration of a bulk mutation phase; EndBulkUpdates
	// reconciles it once for the whole tree.
	BeginBulkUpdates()
	EndBulkUpdates(ctx context.Context, tx *gorm.DB, rootID string) error
}

type contentNodeRepo struct {
	db   *gorm.DB
	log  *logger.Logger
	bulk bool
}

func NewContentNodeRepo(db *gorm.DB, baseLog *logger.Logger) ContentNodeRepo {
	return &contentNodeRepo{db: db, log: baseLog.With("repo", "ContentNodeRepo")}
}

func (r *contentNodeRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *contentNodeRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.ContentNode, error) {
	var node types.ContentNode
	if err := r.conn(tx).WithContext(ctx).
		Preload("License").
		Preload("Language").
		First(&node, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &node, nil
}

func (r *contentNodeRepo) Children(ctx context.Context, tx *gorm.DB, parentID string) ([]*types.ContentNode, error) {
	var nodes []*types.ContentNode
	if err := r.conn(tx).WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("sort_order").
		Find(&nodes).Error; err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *contentNodeRepo) FamilyHasChanges(ctx context.Context, tx *gorm.DB, rootID string) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Raw(
		familyCTE+` SELECT count(*) FROM contentnode WHERE id IN (SELECT id FROM family) AND changed`,
		rootID,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *contentNodeRepo) HasNonTopicDescendant(ctx context.Context, tx *gorm.DB, nodeID string) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Raw(
		familyCTE+` SELECT count(*) FROM contentnode WHERE id IN (SELECT id FROM family) AND kind <> ?`,
		nodeID, types.KindTopic,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *contentNodeRepo) PublishedDescendants(ctx context.Context, tx *gorm.DB, rootID string) ([]*types.ContentNode, error) {
	var nodes []*types.ContentNode
	err := r.conn(tx).WithContext(ctx).Raw(
		familyCTE+` SELECT * FROM contentnode WHERE id IN (SELECT id FROM family) AND id <> ? AND published`,
		rootID, rootID,
	).Scan(&nodes).Error
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *contentNodeRepo) MarkFamilyPublished(ctx context.Context, tx *gorm.DB, rootID string) error {
	err := r.conn(tx).WithContext(ctx).Exec(
		familyCTE+` UPDATE contentnode SET changed = ?, published = ? WHERE id IN (SELECT id FROM family)`,
		rootID, false, true,
	).Error
	if err != nil {
		return err
	}
	if r.bulk {
		return nil
	}
	return r.recomputeLevels(ctx, tx, rootID)
}

func (r *contentNodeRepo) BeginBulkUpdates() {
	r.bulk = true
}

func (r *contentNodeRepo) EndBulkUpdates(ctx context.Context, tx *gorm.DB, rootID string) error {
	r.bulk = false
	return r.recomputeLevels(ctx, tx, rootID)
}

func (r *contentNodeRepo) recomputeLevels(ctx context.Context, tx *gorm.DB, rootID string) error {
	return r.conn(tx).WithContext(ctx).Exec(`
		WITH RECURSIVE depths(id, depth) AS (
			SELECT id, 0 FROM contentnode WHERE id = ?
			UNION ALL
			SELECT c.id, d.depth + 1 FROM contentnode c JOIN depths d ON c.parent_id = d.id
		)
		UPDATE contentnode SET level = (SELECT depth FROM depths WHERE depths.id = contentnode.id)
		WHERE id IN (SELECT id FROM depths)`,
		rootID,
	).Error
}

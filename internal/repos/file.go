package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/studio-publisher/internal/pkg/logger"
	"github.com/yungbote/studio-publisher/internal/types"
)

type FileRepo interface {
	ForNodeExcludingPresets(ctx context.Context, tx *gorm.DB, nodeID string, presetIDs []string) ([]*types.File, error)
	ForAssessmentItem(ctx context.Context, tx *gorm.DB, itemID, presetID string) ([]*types.File, error)
	ExistsForNode(ctx context.Context, tx *gorm.DB, nodeID, presetID string) (bool, error)
	DeleteForNode(ctx context.Context, tx *gorm.DB, nodeID, presetID string) error
	ForNodeIDs(ctx context.Context, tx *gorm.DB, nodeIDs []string) ([]*types.File, error)
	Create(ctx context.Context, tx *gorm.DB, file *types.File) error
}

type fileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFileRepo(db *gorm.DB, baseLog *logger.Logger) FileRepo {
	return &fileRepo{db: db, log: baseLog.With("repo", "FileRepo")}
}

func (r *fileRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *fileRepo) ForNodeExcludingPresets(ctx context.Context, tx *gorm.DB, nodeID string, presetIDs []string) ([]*types.File, error) {
	var files []*types.File
	q := r.conn(tx).WithContext(ctx).
		Preload("Language").
		Where("contentnode_id = ?", nodeID)
	if len(presetIDs) > 0 {
		q = q.Where("preset_id NOT IN ?", presetIDs)
	}
	if err := q.Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// ForAssessmentItem returns the item's files for one preset, ordered by
// checksum for deterministic archive layout.
func (r *fileRepo) ForAssessmentItem(ctx context.Context, tx *gorm.DB, itemID, presetID string) ([]*types.File, error) {
	var files []*types.File
	if err := r.conn(tx).WithContext(ctx).
		Where("assessment_item_id = ? AND preset_id = ?", itemID, presetID).
		Order("checksum").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepo) ExistsForNode(ctx context.Context, tx *gorm.DB, nodeID, presetID string) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.File{}).
		Where("contentnode_id = ? AND preset_id = ?", nodeID, presetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *fileRepo) DeleteForNode(ctx context.Context, tx *gorm.DB, nodeID, presetID string) error {
	return r.conn(tx).WithContext(ctx).
		Where("contentnode_id = ? AND preset_id = ?", nodeID, presetID).
		Delete(&types.File{}).Error
}

func (r *fileRepo) ForNodeIDs(ctx context.Context, tx *gorm.DB, nodeIDs []string) ([]*types.File, error) {
	var files []*types.File
	if len(nodeIDs) == 0 {
		return files, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("contentnode_id IN ?", nodeIDs).
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *fileRepo) Create(ctx context.Context, tx *gorm.DB, file *types.File) error {
	return r.conn(tx).WithContext(ctx).Create(file).Error
}

package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/studio-publisher/internal/pkg/logger"
	"github.com/yungbote/studio-publisher/internal/types"
)

type AssessmentItemRepo interface {
	// ForNode returns the node's items in their stable authored order.
	ForNode(ctx context.Context, tx *gorm.DB, nodeID string) ([]*types.AssessmentItem, error)
}

type assessmentItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentItemRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentItemRepo {
	return &assessmentItemRepo{db: db, log: baseLog.With("repo", "AssessmentItemRepo")}
}

func (r *assessmentItemRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *assessmentItemRepo) ForNode(ctx context.Context, tx *gorm.DB, nodeID string) ([]*types.AssessmentItem, error) {
	var items []*types.AssessmentItem
	if err := r.conn(tx).WithContext(ctx).
		Where("contentnode_id = ?", nodeID).
		Order("item_order").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

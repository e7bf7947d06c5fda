package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/studio-publisher/internal/pkg/logger"
)

// PrerequisitePair carries the publish identities of one prerequisite edge.
type PrerequisitePair struct {
	TargetNodeID   string `gorm:"column:target_node_id"`
	PrerequisiteID string `gorm:"column:prerequisite_id"`
}

type PrerequisiteRepo interface {
	// ForFamily returns prerequisite edges whose prerequisite end lives in
	// the given tree, as (target NodeID, prerequisite NodeID) pairs.
	ForFamily(ctx context.Context, tx *gorm.DB, rootID string) ([]PrerequisitePair, error)
}

type prerequisiteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPrerequisiteRepo(db *gorm.DB, baseLog *logger.Logger) PrerequisiteRepo {
	return &prerequisiteRepo{db: db, log: baseLog.With("repo", "PrerequisiteRepo")}
}

func (r *prerequisiteRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *prerequisiteRepo) ForFamily(ctx context.Context, tx *gorm.DB, rootID string) ([]PrerequisitePair, error) {
	var pairs []PrerequisitePair
	err := r.conn(tx).WithContext(ctx).Raw(
		familyCTE+`
		SELECT target.node_id AS target_node_id, prereq.node_id AS prerequisite_id
		FROM prerequisite_relationship rel
		JOIN contentnode target ON target.id = rel.target_node_id
		JOIN contentnode prereq ON prereq.id = rel.prerequisite_id
		WHERE rel.prerequisite_id IN (SELECT id FROM family)`,
		rootID,
	).Scan(&pairs).Error
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

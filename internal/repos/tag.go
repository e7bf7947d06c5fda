package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/studio-publisher/internal/pkg/logger"
	"github.com/yungbote/studio-publisher/internal/types"
)

type TagRepo interface {
	ForChannel(ctx context.Context, tx *gorm.DB, channelID string) ([]*types.ContentTag, error)
	ForNode(ctx context.Context, tx *gorm.DB, nodeID string) ([]*types.ContentTag, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (r *tagRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *tagRepo) ForChannel(ctx context.Context, tx *gorm.DB, channelID string) ([]*types.ContentTag, error) {
	var tags []*types.ContentTag
	if err := r.conn(tx).WithContext(ctx).
		Where("channel_id = ?", channelID).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepo) ForNode(ctx context.Context, tx *gorm.DB, nodeID string) ([]*types.ContentTag, error) {
	var tags []*types.ContentTag
	err := r.conn(tx).WithContext(ctx).Raw(`
		SELECT t.* FROM contenttag t
		JOIN contentnode_tag j ON j.content_tag_id = t.id
		WHERE j.content_node_id = ?`,
		nodeID,
	).Scan(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

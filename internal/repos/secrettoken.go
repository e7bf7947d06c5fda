package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/studio-publisher/internal/pkg/logger"
	"github.com/yungbote/studio-publisher/internal/types"
)

type TokenRepo interface {
	Exists(ctx context.Context, tx *gorm.DB, token string) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, token string, isPrimary bool) (*types.SecretToken, error)
}

type tokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTokenRepo(db *gorm.DB, baseLog *logger.Logger) TokenRepo {
	return &tokenRepo{db: db, log: baseLog.With("repo", "TokenRepo")}
}

func (r *tokenRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *tokenRepo) Exists(ctx context.Context, tx *gorm.DB, token string) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.SecretToken{}).
		Where("token = ?", token).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tokenRepo) Create(ctx context.Context, tx *gorm.DB, token string, isPrimary bool) (*types.SecretToken, error) {
	record := &types.SecretToken{Token: token, IsPrimary: isPrimary}
	if err := r.conn(tx).WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

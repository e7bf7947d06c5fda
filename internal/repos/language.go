package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/yungbote/studio-publisher/internal/pkg/errors"
	"github.com/yungbote/studio-publisher/internal/pkg/logger"
	"github.com/yungbote/studio-publisher/internal/types"
)

type LanguageRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Language, error)
}

type languageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLanguageRepo(db *gorm.DB, baseLog *logger.Logger) LanguageRepo {
	return &languageRepo{db: db, log: baseLog.With("repo", "LanguageRepo")}
}

func (r *languageRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *languageRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Language, error) {
	var lang types.Language
	if err := r.conn(tx).WithContext(ctx).First(&lang, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &lang, nil
}

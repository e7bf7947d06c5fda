package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/yungbote/studio-publisher/internal/pkg/errors"
	"github.com/yungbote/studio-publisher/internal/pkg/logger"
	"github.com/yungbote/studio-publisher/internal/types"
)

type LicenseRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.License, error)
}

type licenseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLicenseRepo(db *gorm.DB, baseLog *logger.Logger) LicenseRepo {
	return &licenseRepo{db: db, log: baseLog.With("repo", "LicenseRepo")}
}

func (r *licenseRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *licenseRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.License, error) {
	var license types.License
	if err := r.conn(tx).WithContext(ctx).First(&license, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &license, nil
}

package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/yungbote/studio-publisher/internal/pkg/errors"
	"github.com/yungbote/studio-publisher/internal/pkg/logger"
	"github.com/yungbote/studio-publisher/internal/types"
)

type ChannelRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Channel, error)
	Save(ctx context.Context, tx *gorm.DB, channel *types.Channel) error
	HasPrimaryToken(ctx context.Context, tx *gorm.DB, channelID string) (bool, error)
	AttachTokens(ctx context.Context, tx *gorm.DB, channel *types.Channel, tokens []*types.SecretToken) error
	AddIncludedLanguages(ctx context.Context, tx *gorm.DB, channel *types.Channel, languageIDs []string) error
}

type channelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChannelRepo(db *gorm.DB, baseLog *logger.Logger) ChannelRepo {
	return &channelRepo{db: db, log: baseLog.With("repo", "ChannelRepo")}
}

func (r *channelRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *channelRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Channel, error) {
	var channel types.Channel
	if err := r.conn(tx).WithContext(ctx).
		Preload("Language").
		First(&channel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &channel, nil
}

func (r *channelRepo) Save(ctx context.Context, tx *gorm.DB, channel *types.Channel) error {
	return r.conn(tx).WithContext(ctx).Save(channel).Error
}

func (r *channelRepo) HasPrimaryToken(ctx context.Context, tx *gorm.DB, channelID string) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Raw(`
		SELECT count(*) FROM secrettoken t
		JOIN channel_secret_token j ON j.secret_token_token = t.token
		WHERE j.channel_id = ? AND t.is_primary`,
		channelID,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *channelRepo) AttachTokens(ctx context.Context, tx *gorm.DB, channel *types.Channel, tokens []*types.SecretToken) error {
	return r.conn(tx).WithContext(ctx).
		Model(channel).
		Association("SecretTokens").
		Append(tokens)
}

func (r *channelRepo) AddIncludedLanguages(ctx context.Context, tx *gorm.DB, channel *types.Channel, languageIDs []string) error {
	if len(languageIDs) == 0 {
		return nil
	}
	var languages []*types.Language
	if err := r.conn(tx).WithContext(ctx).
		Where("id IN ?", languageIDs).
		Find(&languages).Error; err != nil {
		return err
	}
	return r.conn(tx).WithContext(ctx).
		Model(channel).
		Association("IncludedLanguages").
		Append(languages)
}

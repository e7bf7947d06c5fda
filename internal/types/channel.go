package types

import (
	"time"

	"gorm.io/datatypes"
)

// Channel is the editorial workspace being published. The aggregate columns
// (TotalResourceCount, PublishedKindCount, PublishedSize, IncludedLanguages)
// are derived and rewritten on every publish.
type Channel struct {
	ID          string `gorm:"type:varchar(32);primaryKey" json:"id"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	Version     int    `gorm:"column:version;not null;default:0" json:"version"`

	LanguageID *string `gorm:"column:language_id" json:"language_id,omitempty"`
	MainTreeID *string `gorm:"column:main_tree_id;type:varchar(32)" json:"main_tree_id,omitempty"`

	// Thumbnail is a storage filename (checksum.ext) or URL;
	// ThumbnailEncoding optionally carries an inline {"base64": ...} payload;
	// IconEncoding caches the converted 128x128 data URI between publishes.
	Thumbnail         string         `gorm:"column:thumbnail" json:"thumbnail"`
	ThumbnailEncoding datatypes.JSON `gorm:"column:thumbnail_encoding" json:"thumbnail_encoding,omitempty"`
	IconEncoding      string         `gorm:"column:icon_encoding" json:"icon_encoding"`

	LastPublished      *time.Time     `gorm:"column:last_published" json:"last_published,omitempty"`
	TotalResourceCount int            `gorm:"column:total_resource_count;not null;default:0" json:"total_resource_count"`
	PublishedKindCount datatypes.JSON `gorm:"column:published_kind_count" json:"published_kind_count,omitempty"`
	PublishedSize      int64          `gorm:"column:published_size;not null;default:0" json:"published_size"`

	Language          *Language      `gorm:"foreignKey:LanguageID" json:"-"`
	MainTree          *ContentNode   `gorm:"foreignKey:MainTreeID" json:"-"`
	IncludedLanguages []*Language    `gorm:"many2many:channel_included_language" json:"-"`
	SecretTokens      []*SecretToken `gorm:"many2many:channel_secret_token" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Channel) TableName() string { return "channel" }

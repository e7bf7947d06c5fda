package exportschema

// File points a published node at one checksum-addressed blob.
type File struct {
	ID            string  `gorm:"type:varchar(32);primaryKey" json:"id"`
	Checksum      string  `gorm:"column:checksum;type:varchar(32);not null;index" json:"checksum"`
	Extension     string  `gorm:"column:extension;not null" json:"extension"`
	Available     bool    `gorm:"column:available;not null;default:true" json:"available"`
	FileSize      int64   `gorm:"column:file_size;not null;default:0" json:"file_size"`
	ContentNodeID string  `gorm:"column:contentnode_id;type:varchar(32);not null;index" json:"contentnode_id"`
	Preset        string  `gorm:"column:preset;not null" json:"preset"`
	Supplementary bool    `gorm:"column:supplementary;not null;default:false" json:"supplementary"`
	LangID        *string `gorm:"column:lang_id" json:"lang_id,omitempty"`
	Thumbnail     bool    `gorm:"column:thumbnail;not null;default:false" json:"thumbnail"`
	Priority      int     `gorm:"column:priority;not null;default:0" json:"priority"`

	ContentNode *ContentNode `gorm:"foreignKey:ContentNodeID" json:"-"`
	Lang        *Language    `gorm:"foreignKey:LangID" json:"-"`
}

func (File) TableName() string { return "content_file" }

package types

import "time"

// File is a content-addressed blob reference. Several nodes may point at the
// same checksum; the blob itself lives in the storage root.
type File struct {
	ID               string  `gorm:"type:varchar(32);primaryKey" json:"id"`
	Checksum         string  `gorm:"column:checksum;type:varchar(32);not null;index" json:"checksum"`
	FileFormat       string  `gorm:"column:file_format;not null" json:"file_format"` // extension, no dot
	PresetID         string  `gorm:"column:preset_id;not null;index" json:"preset_id"`
	FileSize         int64   `gorm:"column:file_size;not null;default:0" json:"file_size"`
	ContentNodeID    *string `gorm:"column:contentnode_id;type:varchar(32);index" json:"contentnode_id,omitempty"`
	AssessmentItemID *string `gorm:"column:assessment_item_id;type:varchar(32);index" json:"assessment_item_id,omitempty"`
	LanguageID       *string `gorm:"column:language_id" json:"language_id,omitempty"`
	OriginalFilename string  `gorm:"column:original_filename" json:"original_filename"`
	UploadedByID     *string `gorm:"column:uploaded_by_id;type:varchar(32)" json:"uploaded_by_id,omitempty"`

	Language *Language `gorm:"foreignKey:LanguageID" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (File) TableName() string { return "file" }

// StorageName is the filename the blob is stored under.
func (f *File) StorageName() string { return f.Checksum + "." + f.FileFormat }

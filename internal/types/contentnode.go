package types

import (
	"time"

	"gorm.io/datatypes"
)

// ContentNode is one node of the editorial tree. ID is the workspace-local
// key; NodeID is the stable identity the published schema is keyed by.
type ContentNode struct {
	ID        string  `gorm:"type:varchar(32);primaryKey" json:"id"`
	NodeID    string  `gorm:"column:node_id;type:varchar(32);not null;uniqueIndex" json:"node_id"`
	ContentID string  `gorm:"column:content_id;type:varchar(32);not null;index" json:"content_id"`
	ChannelID string  `gorm:"column:channel_id;type:varchar(32);index" json:"channel_id"`
	ParentID  *string `gorm:"column:parent_id;type:varchar(32);index" json:"parent_id,omitempty"`

	Kind            string  `gorm:"column:kind;not null;index" json:"kind"` // topic|exercise|resource
	Title           string  `gorm:"column:title;not null" json:"title"`
	Description     string  `gorm:"column:description" json:"description"`
	Author          string  `gorm:"column:author" json:"author"`
	CopyrightHolder string  `gorm:"column:copyright_holder" json:"copyright_holder"`
	SortOrder       float64 `gorm:"column:sort_order;not null;default:0" json:"sort_order"`

	LicenseID          *string `gorm:"column:license_id;type:varchar(32)" json:"license_id,omitempty"`
	LicenseDescription string  `gorm:"column:license_description" json:"license_description"`
	LanguageID         *string `gorm:"column:language_id" json:"language_id,omitempty"`

	Changed   bool `gorm:"column:changed;not null;default:false;index" json:"changed"`
	Published bool `gorm:"column:published;not null;default:false" json:"published"`

	// Depth below the root, maintained by the tree repo. Recomputation is
	// suspended during bulk phases and reconciled once at the end.
	Level int `gorm:"column:level;not null;default:0" json:"level"`

	ThumbnailEncoding datatypes.JSON `gorm:"column:thumbnail_encoding" json:"thumbnail_encoding,omitempty"`
	ExtraFields       datatypes.JSON `gorm:"column:extra_fields" json:"extra_fields,omitempty"`

	Parent          *ContentNode      `gorm:"foreignKey:ParentID" json:"-"`
	Children        []*ContentNode    `gorm:"foreignKey:ParentID" json:"-"`
	License         *License          `gorm:"foreignKey:LicenseID" json:"-"`
	Language        *Language         `gorm:"foreignKey:LanguageID" json:"-"`
	Files           []*File           `gorm:"foreignKey:ContentNodeID" json:"-"`
	AssessmentItems []*AssessmentItem `gorm:"foreignKey:ContentNodeID" json:"-"`
	Tags            []*ContentTag     `gorm:"many2many:contentnode_tag" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ContentNode) TableName() string { return "contentnode" }

// IsLeaf reports whether the node is a playable resource rather than a
// structural topic.
func (n *ContentNode) IsLeaf() bool { return n.Kind != KindTopic }

// Package exportschema holds the normalized schema the playback runtime
// reads. Records here live only inside one export database; every publish
// rebuilds them from scratch.
package exportschema

// ContentNode is the published form of an editorial node, keyed by the
// source node's stable NodeID.
type ContentNode struct {
	ID       string  `gorm:"type:varchar(32);primaryKey" json:"id"`
	ParentID *string `gorm:"column:parent_id;type:varchar(32);index" json:"parent_id,omitempty"`

	Kind         string  `gorm:"column:kind;not null;index" json:"kind"`
	Title        string  `gorm:"column:title;not null" json:"title"`
	Description  string  `gorm:"column:description" json:"description"`
	Author       string  `gorm:"column:author" json:"author"`
	SortOrder    float64 `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	LicenseOwner string  `gorm:"column:license_owner" json:"license_owner"`
	ContentID    string  `gorm:"column:content_id;type:varchar(32);not null;index" json:"content_id"`

	// Available hides empty topics from browsing without deleting them.
	Available bool `gorm:"column:available;not null;default:false" json:"available"`

	LicenseID *string `gorm:"column:license_id;type:varchar(32)" json:"license_id,omitempty"`
	LangID    *string `gorm:"column:lang_id" json:"lang_id,omitempty"`

	Parent          *ContentNode   `gorm:"foreignKey:ParentID" json:"-"`
	License         *License       `gorm:"foreignKey:LicenseID" json:"-"`
	Lang            *Language      `gorm:"foreignKey:LangID" json:"-"`
	Tags            []*ContentTag  `gorm:"many2many:contentnode_tag" json:"-"`
	HasPrerequisite []*ContentNode `gorm:"many2many:contentnode_has_prerequisite;joinForeignKey:contentnode_id;joinReferences:prerequisite_id" json:"-"`
}

func (ContentNode) TableName() string { return "content_contentnode" }

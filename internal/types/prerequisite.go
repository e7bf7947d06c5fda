package types

// PrerequisiteRelationship records that TargetNode requires Prerequisite to
// be completed first. Both ends live in the same tree.
type PrerequisiteRelationship struct {
	ID             string `gorm:"type:varchar(32);primaryKey" json:"id"`
	TargetNodeID   string `gorm:"column:target_node_id;type:varchar(32);not null;index" json:"target_node_id"`
	PrerequisiteID string `gorm:"column:prerequisite_id;type:varchar(32);not null;index" json:"prerequisite_id"`

	TargetNode   *ContentNode `gorm:"foreignKey:TargetNodeID" json:"-"`
	Prerequisite *ContentNode `gorm:"foreignKey:PrerequisiteID" json:"-"`
}

func (PrerequisiteRelationship) TableName() string { return "prerequisite_relationship" }

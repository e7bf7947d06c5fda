package types

import (
	"time"

	"gorm.io/datatypes"
)

// AssessmentItem is one question of an exercise node. Answers and Hints hold
// JSON lists of {answer|hint, correct, order} objects authored upstream.
type AssessmentItem struct {
	ID            string `gorm:"type:varchar(32);primaryKey" json:"id"`
	AssessmentID  string `gorm:"column:assessment_id;type:varchar(32);not null;index" json:"assessment_id"`
	ContentNodeID string `gorm:"column:contentnode_id;type:varchar(32);not null;index" json:"contentnode_id"`

	Type      string         `gorm:"column:type;not null" json:"type"`
	Question  string         `gorm:"column:question" json:"question"`
	Answers   datatypes.JSON `gorm:"column:answers" json:"answers,omitempty"`
	Hints     datatypes.JSON `gorm:"column:hints" json:"hints,omitempty"`
	RawData   string         `gorm:"column:raw_data" json:"raw_data"`
	Order     float64        `gorm:"column:item_order;not null;default:0" json:"order"`
	Randomize bool           `gorm:"column:randomize;not null;default:false" json:"randomize"`

	Files []*File `gorm:"foreignKey:AssessmentItemID" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (AssessmentItem) TableName() string { return "assessmentitem" }

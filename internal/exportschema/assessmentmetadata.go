package exportschema

import "gorm.io/datatypes"

// AssessmentMetaData carries the normalized mastery model and the ordered
// item id list for one exercise node.
type AssessmentMetaData struct {
	ID                  string         `gorm:"type:varchar(32);primaryKey" json:"id"`
	ContentNodeID       string         `gorm:"column:contentnode_id;type:varchar(32);not null;index" json:"contentnode_id"`
	AssessmentItemIDs   datatypes.JSON `gorm:"column:assessment_item_ids" json:"assessment_item_ids"`
	NumberOfAssessments int            `gorm:"column:number_of_assessments;not null;default:0" json:"number_of_assessments"`
	MasteryModel        datatypes.JSON `gorm:"column:mastery_model" json:"mastery_model"`
	Randomize           bool           `gorm:"column:randomize;not null;default:true" json:"randomize"`
	IsManipulable       bool           `gorm:"column:is_manipulable;not null;default:false" json:"is_manipulable"`

	ContentNode *ContentNode `gorm:"foreignKey:ContentNodeID" json:"-"`
}

func (AssessmentMetaData) TableName() string { return "content_assessmentmetadata" }

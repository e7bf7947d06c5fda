package types

// License is an editorial licensing record. Custom licenses carry their
// description on the node, not here.
type License struct {
	ID                 string `gorm:"type:varchar(32);primaryKey" json:"id"`
	LicenseName        string `gorm:"column:license_name;not null;uniqueIndex" json:"license_name"`
	LicenseDescription string `gorm:"column:license_description" json:"license_description"`
	IsCustom           bool   `gorm:"column:is_custom;not null;default:false" json:"is_custom"`
}

func (License) TableName() string { return "license" }

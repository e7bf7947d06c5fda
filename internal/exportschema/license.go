package exportschema

type License struct {
	ID                 string `gorm:"type:varchar(32);primaryKey" json:"id"`
	LicenseName        string `gorm:"column:license_name;not null;index" json:"license_name"`
	LicenseDescription string `gorm:"column:license_description" json:"license_description"`
}

func (License) TableName() string { return "content_license" }

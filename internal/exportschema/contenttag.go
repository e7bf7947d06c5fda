package exportschema

type ContentTag struct {
	ID      string `gorm:"type:varchar(32);primaryKey" json:"id"`
	TagName string `gorm:"column:tag_name;not null" json:"tag_name"`
}

func (ContentTag) TableName() string { return "content_contenttag" }

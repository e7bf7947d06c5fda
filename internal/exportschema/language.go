package exportschema

type Language struct {
	ID          string `gorm:"type:varchar(14);primaryKey" json:"id"`
	LangCode    string `gorm:"column:lang_code;not null;index" json:"lang_code"`
	LangSubcode string `gorm:"column:lang_subcode" json:"lang_subcode"`
	LangName    string `gorm:"column:lang_name" json:"lang_name"`
}

func (Language) TableName() string { return "content_language" }

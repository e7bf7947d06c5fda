package types

// Language rows exist in two schema generations: older rows carry only
// NativeName, newer ones fill LangName. Readers coalesce the two.
type Language struct {
	ID          string `gorm:"type:varchar(14);primaryKey" json:"id"`
	LangCode    string `gorm:"column:lang_code;not null;index" json:"lang_code"`
	LangSubcode string `gorm:"column:lang_subcode" json:"lang_subcode"`
	LangName    string `gorm:"column:lang_name" json:"lang_name"`
	NativeName  string `gorm:"column:native_name" json:"native_name"`
}

func (Language) TableName() string { return "language" }

// DisplayName prefers LangName and falls back to the legacy NativeName
// column. Needs product confirmation on whether the fallback is still wanted
// once the old rows are migrated.
func (l *Language) DisplayName() string {
	if l.LangName != "" {
		return l.LangName
	}
	return l.NativeName
}

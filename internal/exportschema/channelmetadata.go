package exportschema

// ChannelMetadata is the single channel row of an export database.
type ChannelMetadata struct {
	ID          string `gorm:"type:varchar(32);primaryKey" json:"id"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	Version     int    `gorm:"column:version;not null;default:0" json:"version"`
	Thumbnail   string `gorm:"column:thumbnail" json:"thumbnail"` // base64 data URI
	RootPk      string `gorm:"column:root_pk;type:varchar(32);not null" json:"root_pk"`
}

func (ChannelMetadata) TableName() string { return "content_channelmetadata" }

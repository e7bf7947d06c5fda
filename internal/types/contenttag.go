package types

// ContentTag is a channel-scoped label attached to nodes.
type ContentTag struct {
	ID        string `gorm:"type:varchar(32);primaryKey" json:"id"`
	TagName   string `gorm:"column:tag_name;not null;index" json:"tag_name"`
	ChannelID string `gorm:"column:channel_id;type:varchar(32);index" json:"channel_id"`
}

func (ContentTag) TableName() string { return "contenttag" }

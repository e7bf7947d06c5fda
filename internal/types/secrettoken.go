package types

// SecretToken is a distribution identifier. A channel ends up with exactly
// one primary human-readable token plus one token equal to its own id.
type SecretToken struct {
	Token     string `gorm:"column:token;primaryKey" json:"token"`
	IsPrimary bool   `gorm:"column:is_primary;not null;default:false" json:"is_primary"`
}

func (SecretToken) TableName() string { return "secrettoken" }

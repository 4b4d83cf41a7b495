package model

// Setting is one key/value row of persisted configuration.
type Setting struct {
	BaseModel
	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

// Setting keys and their defaults, seeded at migration.
const (
	SettingCurrency        = "currency"
	SettingProgramPage     = "program_page"
	SettingCommerceEnabled = "commerce_enabled"
	SettingRules           = "rules"
)

var SettingDefaults = map[string]string{
	SettingCurrency:        "USD",
	SettingProgramPage:     "",
	SettingCommerceEnabled: "false",
	SettingRules:           "[]",
}

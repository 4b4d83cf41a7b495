package model

import "gorm.io/datatypes"

// Profile holds a student's free-form coaching preferences. The source
// schema indexes user_id without a uniqueness constraint, so multiple
// profile rows per user remain possible; readers take the newest row.
type Profile struct {
	BaseModel
	UserID      uint           `gorm:"index;not null" json:"userId"`
	Preferences datatypes.JSON `gorm:"type:json" json:"preferences,omitempty"`
	Goals       datatypes.JSON `gorm:"type:json" json:"goals,omitempty"`
	Tags        datatypes.JSON `gorm:"type:json" json:"tags,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}

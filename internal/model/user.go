package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Coach   UserRole = "coach"
	Editor  UserRole = "editor"
	Viewer  UserRole = "viewer"
	Admin   UserRole = "admin"
)

type Capability string

const (
	CapView   Capability = "view"
	CapEdit   Capability = "edit"
	CapManage Capability = "manage"
)

// roleCaps grants the three capabilities independently per role.
// Manage does not imply edit, edit does not imply view; a role carries
// exactly the capabilities listed here.
var roleCaps = map[UserRole][]Capability{
	Student: {},
	Viewer:  {CapView},
	Editor:  {CapEdit, CapView},
	Coach:   {CapEdit, CapView},
	Admin:   {CapManage, CapEdit, CapView},
}

func (r UserRole) Capabilities() []Capability {
	return roleCaps[r]
}

func (r UserRole) Can(c Capability) bool {
	for _, got := range roleCaps[r] {
		if got == c {
			return true
		}
	}
	return false
}

type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;default:'student'" json:"role"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

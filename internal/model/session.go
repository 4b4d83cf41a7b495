package model

import "gorm.io/datatypes"

// Session is one coach/student message tied to a program. Rows are
// append-only and immutable once written; history is ordered by
// created_at with the monotonic id breaking ties.
type Session struct {
	BaseModel
	StudentID     uint           `gorm:"index;not null" json:"studentId"`
	CoachID       uint           `gorm:"not null" json:"coachId"`
	ProgramID     uint           `gorm:"index;not null" json:"programId"`
	Message       string         `gorm:"type:longtext" json:"message"`
	AttachmentURL string         `gorm:"type:text" json:"attachmentUrl,omitempty"`
	Meta          datatypes.JSON `gorm:"type:json" json:"meta,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}

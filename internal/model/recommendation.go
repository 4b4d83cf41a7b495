package model

import "gorm.io/datatypes"

// Recommendation is the write-once output of evaluating the configured
// rules against a student's progress. Rule keeps the matched rule as
// written at evaluation time; Output is the action it produced.
type Recommendation struct {
	BaseModel
	StudentID uint           `gorm:"index:idx_rec_student_program;not null" json:"studentId"`
	ProgramID uint           `gorm:"index:idx_rec_student_program;not null" json:"programId"`
	Rule      datatypes.JSON `gorm:"type:json;not null" json:"rule"`
	Output    datatypes.JSON `gorm:"type:json;not null" json:"output"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

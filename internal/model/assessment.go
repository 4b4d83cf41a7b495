package model

import "gorm.io/datatypes"

// Assessment is a scored quiz tied to a program. Config is the question
// document; title and config stay mutable, responses do not.
type Assessment struct {
	BaseModel
	ProgramID uint           `gorm:"index;not null" json:"programId"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Config    datatypes.JSON `gorm:"type:json;not null" json:"config"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// AssessmentConfig is the decoded shape of Assessment.Config.
type AssessmentConfig struct {
	Questions []AssessmentQuestion `json:"questions"`
}

type AssessmentQuestion struct {
	ID     string  `json:"id"`
	Prompt string  `json:"prompt"`
	Answer string  `json:"answer"`
	Points float64 `json:"points"`
}

// AssessmentResponse stores a student's answers and the computed score.
// Immutable once scored.
type AssessmentResponse struct {
	BaseModel
	AssessmentID uint           `gorm:"index;not null" json:"assessmentId"`
	StudentID    uint           `gorm:"index;not null" json:"studentId"`
	Answers      datatypes.JSON `gorm:"type:json;not null" json:"answers"`
	Score        float64        `gorm:"type:decimal(5,2);default:0" json:"score"`
}

func (AssessmentResponse) TableName() string {
	return "assessment_responses"
}

package model

import "time"

// Progress tracks a student's advancement through a program. One row per
// (student, program) pair, created together with the Enrollment.
// Invariants: 0 <= LessonsDone <= LessonsTotal, AvgScore in [0,100].
type Progress struct {
	BaseModel
	StudentID    uint       `gorm:"uniqueIndex:idx_progress_student_program;not null" json:"studentId"`
	ProgramID    uint       `gorm:"uniqueIndex:idx_progress_student_program;not null" json:"programId"`
	LessonsTotal int        `gorm:"default:0" json:"lessonsTotal"`
	LessonsDone  int        `gorm:"default:0" json:"lessonsDone"`
	AvgScore     float64    `gorm:"type:decimal(5,2);default:0" json:"avgScore"`
	LastActive   *time.Time `json:"lastActive,omitempty"`
}

func (Progress) TableName() string {
	return "learning_progress"
}

// Completed reports whether every lesson of the program has been done.
func (p *Progress) Completed() bool {
	return p.LessonsTotal > 0 && p.LessonsDone >= p.LessonsTotal
}

// CompletionRatio is LessonsDone over LessonsTotal in [0,1].
func (p *Progress) CompletionRatio() float64 {
	if p.LessonsTotal == 0 {
		return 0
	}
	return float64(p.LessonsDone) / float64(p.LessonsTotal)
}

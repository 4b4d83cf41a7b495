package model

type EnrollmentStatus string

const (
	StatusEnrolled  EnrollmentStatus = "enrolled"
	StatusActive    EnrollmentStatus = "active"
	StatusCompleted EnrollmentStatus = "completed"
	StatusCancelled EnrollmentStatus = "cancelled"
)

// enrollmentTransitions is the allowed state machine:
// enrolled -> active on first recorded activity,
// active -> completed when all lessons are done,
// any non-terminal state -> cancelled on explicit cancellation.
var enrollmentTransitions = map[EnrollmentStatus][]EnrollmentStatus{
	StatusEnrolled: {StatusActive, StatusCompleted, StatusCancelled},
	StatusActive:   {StatusCompleted, StatusCancelled},
}

func (s EnrollmentStatus) CanTransition(to EnrollmentStatus) bool {
	for _, next := range enrollmentTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Enrollment ties a student to a program. At most one row may exist per
// (student, program) pair; the composite unique index backs that up under
// concurrent enrolls.
type Enrollment struct {
	BaseModel
	StudentID uint             `gorm:"uniqueIndex:idx_enroll_student_program;not null" json:"studentId"`
	ProgramID uint             `gorm:"uniqueIndex:idx_enroll_student_program;not null" json:"programId"`
	Status    EnrollmentStatus `gorm:"size:32;default:'enrolled'" json:"status"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

package service

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEnrollmentFixture(t *testing.T) (*EnrollmentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewProgressRepository(db),
		repository.NewProgramRepository(db),
		db,
	)
	return svc, db
}

func seedProgram(t *testing.T, db *gorm.DB, lessons int) *model.Program {
	t.Helper()
	p := &model.Program{Title: "Strength Basics", LessonCount: lessons, Published: true}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestEnroll_CreatesEnrollmentAndProgressTogether(t *testing.T) {
	svc, db := newEnrollmentFixture(t)
	program := seedProgram(t, db, 10)

	enrollment, err := svc.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnrolled, enrollment.Status)

	var progress model.Progress
	require.NoError(t, db.Where("student_id = ? AND program_id = ?", 1, program.ID).First(&progress).Error)
	assert.Equal(t, 10, progress.LessonsTotal)
	assert.Equal(t, 0, progress.LessonsDone)
	assert.Zero(t, progress.AvgScore)
}

func TestEnroll_UnknownProgram(t *testing.T) {
	svc, _ := newEnrollmentFixture(t)

	_, err := svc.Enroll(context.Background(), 1, 999)
	assert.ErrorIs(t, err, util.ErrProgramNotFound)
}

func TestEnroll_DuplicateIsConflict(t *testing.T) {
	svc, db := newEnrollmentFixture(t)
	program := seedProgram(t, db, 5)

	_, err := svc.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), 1, program.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)

	var count int64
	require.NoError(t, db.Model(&model.Enrollment{}).
		Where("student_id = ? AND program_id = ?", 1, program.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnroll_UniqueIndexBacksThePrecheck(t *testing.T) {
	svc, db := newEnrollmentFixture(t)
	program := seedProgram(t, db, 5)

	// A row slipped in by a concurrent writer after the precheck would
	// hit the unique index. Simulate by inserting directly.
	require.NoError(t, db.Create(&model.Enrollment{
		StudentID: 2, ProgramID: program.ID, Status: model.StatusEnrolled,
	}).Error)

	err := db.Create(&model.Enrollment{
		StudentID: 2, ProgramID: program.ID, Status: model.StatusEnrolled,
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	_, err = svc.Enroll(context.Background(), 2, program.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
}

func TestRecordActivity_ClampsLessonBounds(t *testing.T) {
	svc, db := newEnrollmentFixture(t)
	program := seedProgram(t, db, 3)
	_, err := svc.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)

	progress, err := svc.RecordActivity(context.Background(), 1, program.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.LessonsDone)

	progress, err = svc.RecordActivity(context.Background(), 1, program.ID, -100)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.LessonsDone)
	require.NotNil(t, progress.LastActive)
}

func TestRecordActivity_AdvancesStatus(t *testing.T) {
	svc, db := newEnrollmentFixture(t)
	program := seedProgram(t, db, 2)
	_, err := svc.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)

	_, err = svc.RecordActivity(context.Background(), 1, program.ID, 1)
	require.NoError(t, err)

	var enrollment model.Enrollment
	require.NoError(t, db.Where("student_id = ? AND program_id = ?", 1, program.ID).First(&enrollment).Error)
	assert.Equal(t, model.StatusActive, enrollment.Status)

	_, err = svc.RecordActivity(context.Background(), 1, program.ID, 1)
	require.NoError(t, err)

	require.NoError(t, db.Where("student_id = ? AND program_id = ?", 1, program.ID).First(&enrollment).Error)
	assert.Equal(t, model.StatusCompleted, enrollment.Status)

	// Completed is terminal; further activity leaves it alone.
	_, err = svc.RecordActivity(context.Background(), 1, program.ID, -1)
	require.NoError(t, err)
	require.NoError(t, db.Where("student_id = ? AND program_id = ?", 1, program.ID).First(&enrollment).Error)
	assert.Equal(t, model.StatusCompleted, enrollment.Status)
}

func TestRecordActivity_RecomputesRunningAverage(t *testing.T) {
	svc, db := newEnrollmentFixture(t)
	program := seedProgram(t, db, 10)
	_, err := svc.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)

	assessment := &model.Assessment{
		ProgramID: program.ID,
		Title:     "Check-in",
		Config:    []byte(`{"questions":[{"id":"q1","answer":"a","points":1}]}`),
	}
	require.NoError(t, db.Create(assessment).Error)

	require.NoError(t, db.Create(&model.AssessmentResponse{
		AssessmentID: assessment.ID, StudentID: 1, Answers: []byte(`{}`), Score: 40,
	}).Error)

	progress, err := svc.RecordActivity(context.Background(), 1, program.ID, 0)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, progress.AvgScore, 0.001)

	require.NoError(t, db.Create(&model.AssessmentResponse{
		AssessmentID: assessment.ID, StudentID: 1, Answers: []byte(`{}`), Score: 80,
	}).Error)

	progress, err = svc.RecordActivity(context.Background(), 1, program.ID, 0)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, progress.AvgScore, 0.001)
}

func TestRecordActivity_UnknownPair(t *testing.T) {
	svc, _ := newEnrollmentFixture(t)

	_, err := svc.RecordActivity(context.Background(), 9, 9, 1)
	assert.ErrorIs(t, err, util.ErrProgressNotFound)
}

func TestCancel_Transitions(t *testing.T) {
	svc, db := newEnrollmentFixture(t)
	program := seedProgram(t, db, 1)
	_, err := svc.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), 1, program.ID))

	// Cancelled is terminal.
	err = svc.Cancel(context.Background(), 1, program.ID)
	assert.ErrorIs(t, err, util.ErrInvalidStatus)
}

func TestCancel_CompletedIsTerminal(t *testing.T) {
	svc, db := newEnrollmentFixture(t)
	program := seedProgram(t, db, 1)
	_, err := svc.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)

	_, err = svc.RecordActivity(context.Background(), 1, program.ID, 1)
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), 1, program.ID)
	assert.ErrorIs(t, err, util.ErrInvalidStatus)
}

package service

import (
	"bytes"
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func newReportFixture(t *testing.T) (*ReportService, *EnrollmentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	enrollment := NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewProgressRepository(db),
		repository.NewProgramRepository(db),
		db,
	)
	report := NewReportService(
		repository.NewAnalyticsRepository(db),
		repository.NewProgressRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewProgramRepository(db),
		nil,
	)
	return report, enrollment, db
}

func reportWindow() (time.Time, time.Time) {
	now := time.Now()
	return now.AddDate(0, 0, -1), now.AddDate(0, 0, 1)
}

func TestRunReport_LiveAggregation(t *testing.T) {
	report, enrollment, db := newReportFixture(t)
	program := seedProgram(t, db, 10)

	_, err := enrollment.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)

	assessment := &model.Assessment{
		ProgramID: program.ID, Title: "Check", Config: []byte(`{"questions":[{"id":"q1","answer":"a","points":1}]}`),
	}
	require.NoError(t, db.Create(assessment).Error)
	for _, score := range []float64{40, 80} {
		require.NoError(t, db.Create(&model.AssessmentResponse{
			AssessmentID: assessment.ID, StudentID: 1, Answers: []byte(`{}`), Score: score,
		}).Error)
	}
	_, err = enrollment.RecordActivity(context.Background(), 1, program.ID, 3)
	require.NoError(t, err)

	from, to := reportWindow()
	got, err := report.RunReport(context.Background(), program.ID, from, to)
	require.NoError(t, err)

	assert.Equal(t, "live", got.Source)
	assert.EqualValues(t, 1, got.Enrollments)
	assert.InDelta(t, 60.0, got.AvgScore, 0.001)
	assert.Zero(t, got.CompletionRate)
}

func TestRunReport_PrefersSnapshots(t *testing.T) {
	report, enrollment, db := newReportFixture(t)
	program := seedProgram(t, db, 10)
	_, err := enrollment.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)

	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	require.NoError(t, db.Create(&model.AnalyticsSnapshot{
		ProgramID: program.ID, SnapshotDate: day,
		Enrollments: 7, Active: 4, CompletionRate: 42.5, AvgScore: 81.25,
	}).Error)

	got, err := report.RunReport(context.Background(), program.ID, day.AddDate(0, 0, -1), day.AddDate(0, 0, 2))
	require.NoError(t, err)

	assert.Equal(t, "snapshot", got.Source)
	assert.EqualValues(t, 7, got.Enrollments)
	assert.InDelta(t, 81.25, got.AvgScore, 0.001)
}

func TestRunReport_SnapshotsAgreeWithLiveAcrossIdleDays(t *testing.T) {
	report, enrollment, db := newReportFixture(t)
	program := seedProgram(t, db, 10)

	_, err := enrollment.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)

	assessment := &model.Assessment{
		ProgramID: program.ID, Title: "Check", Config: []byte(`{"questions":[{"id":"q1","answer":"a","points":1}]}`),
	}
	require.NoError(t, db.Create(assessment).Error)
	for _, score := range []float64{40, 80} {
		require.NoError(t, db.Create(&model.AssessmentResponse{
			AssessmentID: assessment.ID, StudentID: 1, Answers: []byte(`{}`), Score: score,
		}).Error)
	}
	_, err = enrollment.RecordActivity(context.Background(), 1, program.ID, 3)
	require.NoError(t, err)

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	to := from.AddDate(0, 0, 3)

	live, err := report.RunReport(context.Background(), program.ID, from, to)
	require.NoError(t, err)
	require.Equal(t, "live", live.Source)

	// Sweep all three days; two of them have no activity at all.
	for offset := -1; offset <= 1; offset++ {
		_, err := report.RecomputeSnapshot(context.Background(), program.ID, now.AddDate(0, 0, offset))
		require.NoError(t, err)
	}

	snap, err := report.RunReport(context.Background(), program.ID, from, to)
	require.NoError(t, err)
	assert.Equal(t, "snapshot", snap.Source)
	assert.Equal(t, live.Enrollments, snap.Enrollments)
	assert.InDelta(t, live.AvgScore, snap.AvgScore, 0.5)
	assert.InDelta(t, live.CompletionRate, snap.CompletionRate, 0.5)
}

func TestRunReportAll_RowPerProgram(t *testing.T) {
	report, enrollment, db := newReportFixture(t)
	first := seedProgram(t, db, 10)
	second := seedProgram(t, db, 10)

	_, err := enrollment.Enroll(context.Background(), 1, first.ID)
	require.NoError(t, err)
	_, err = enrollment.Enroll(context.Background(), 2, second.ID)
	require.NoError(t, err)
	_, err = enrollment.Enroll(context.Background(), 3, second.ID)
	require.NoError(t, err)

	from, to := reportWindow()
	got, err := report.RunReportAll(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byProgram := make(map[uint]ProgramReport, len(got))
	for _, r := range got {
		byProgram[r.ProgramID] = r
	}
	assert.EqualValues(t, 1, byProgram[first.ID].Enrollments)
	assert.EqualValues(t, 2, byProgram[second.ID].Enrollments)
}

func TestRunReport_UnknownProgram(t *testing.T) {
	report, _, _ := newReportFixture(t)

	from, to := reportWindow()
	_, err := report.RunReport(context.Background(), 404, from, to)
	assert.ErrorIs(t, err, util.ErrProgramNotFound)
}

func TestRecomputeSnapshot_AgreesWithLiveAndReplaces(t *testing.T) {
	report, enrollment, db := newReportFixture(t)
	program := seedProgram(t, db, 2)
	_, err := enrollment.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)
	_, err = enrollment.RecordActivity(context.Background(), 1, program.ID, 2)
	require.NoError(t, err)

	today := time.Now()
	snap, err := report.RecomputeSnapshot(context.Background(), program.ID, today)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Enrollments)
	assert.InDelta(t, 100.0, snap.CompletionRate, 0.001)

	// Recomputing the same day replaces the row instead of duplicating.
	_, err = report.RecomputeSnapshot(context.Background(), program.ID, today)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.AnalyticsSnapshot{}).
		Where("program_id = ?", program.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// A report over the snapshotted day now matches the stored numbers.
	from := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	got, err := report.RunReport(context.Background(), program.ID, from, from.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "snapshot", got.Source)
	assert.InDelta(t, snap.AvgScore, got.AvgScore, 0.001)
}

func TestExportReport_ProducesWorkbook(t *testing.T) {
	report, enrollment, db := newReportFixture(t)
	program := seedProgram(t, db, 2)
	_, err := enrollment.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)

	var buf bytes.Buffer
	from, to := reportWindow()
	require.NoError(t, report.ExportReport(context.Background(), &buf, program.ID, from, to))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	cell, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", cell)
}

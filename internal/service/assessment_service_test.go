package service

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAssessmentFixture(t *testing.T) (*AssessmentService, *EnrollmentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	enrollment := NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewProgressRepository(db),
		repository.NewProgramRepository(db),
		db,
	)
	svc := NewAssessmentService(repository.NewAssessmentRepository(db), enrollment, db)
	return svc, enrollment, db
}

func TestDefaultScorer_ProportionalToPoints(t *testing.T) {
	cfg := model.AssessmentConfig{Questions: []model.AssessmentQuestion{
		{ID: "q1", Answer: "a", Points: 1},
		{ID: "q2", Answer: "b", Points: 3},
	}}

	score, err := DefaultScorer(cfg, map[string]string{"q1": "a", "q2": "wrong"})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, score, 0.001)

	score, err = DefaultScorer(cfg, map[string]string{"q1": "a", "q2": "b"})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, score, 0.001)

	score, err = DefaultScorer(cfg, nil)
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestDefaultScorer_RoundsToTwoDecimals(t *testing.T) {
	cfg := model.AssessmentConfig{Questions: []model.AssessmentQuestion{
		{ID: "q1", Answer: "a", Points: 1},
		{ID: "q2", Answer: "b", Points: 1},
		{ID: "q3", Answer: "c", Points: 1},
	}}

	score, err := DefaultScorer(cfg, map[string]string{"q1": "a"})
	require.NoError(t, err)
	assert.InDelta(t, 33.33, score, 0.001)
}

func TestCreateAssessment_RejectsBadConfig(t *testing.T) {
	svc, _, _ := newAssessmentFixture(t)

	cases := []string{
		`{"questions":[]}`,
		`{"questions":[{"id":"","answer":"a","points":1}]}`,
		`{"questions":[{"id":"q1","answer":"a","points":0}]}`,
		`not json`,
	}
	for _, raw := range cases {
		_, err := svc.CreateAssessment(context.Background(), AssessmentRequest{
			ProgramID: 1,
			Title:     "Quiz",
			Config:    json.RawMessage(raw),
		})
		assert.ErrorIs(t, err, util.ErrInvalidConfig, "config %s", raw)
	}
}

func TestSubmitResponse_ScoresAndFeedsProgress(t *testing.T) {
	svc, enrollment, db := newAssessmentFixture(t)
	program := seedProgram(t, db, 10)
	_, err := enrollment.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)

	a, err := svc.CreateAssessment(context.Background(), AssessmentRequest{
		ProgramID: program.ID,
		Title:     "Form check",
		Config: json.RawMessage(`{"questions":[
			{"id":"q1","answer":"a","points":1},
			{"id":"q2","answer":"b","points":1}]}`),
	})
	require.NoError(t, err)

	resp, err := svc.SubmitResponse(context.Background(), a.ID, 1, SubmitResponseRequest{
		Answers: map[string]string{"q1": "a", "q2": "x"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, resp.Score, 0.001)

	progress, err := enrollment.GetProgress(context.Background(), 1, program.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, progress.AvgScore, 0.001)
}

func TestSubmitResponse_MissingAssessment(t *testing.T) {
	svc, _, _ := newAssessmentFixture(t)

	_, err := svc.SubmitResponse(context.Background(), 42, 1, SubmitResponseRequest{
		Answers: map[string]string{"q1": "a"},
	})
	assert.ErrorIs(t, err, util.ErrAssessmentMissing)
}

func TestSubmitResponse_WithoutEnrollmentStillScores(t *testing.T) {
	svc, _, db := newAssessmentFixture(t)
	program := seedProgram(t, db, 5)

	a, err := svc.CreateAssessment(context.Background(), AssessmentRequest{
		ProgramID: program.ID,
		Title:     "Open quiz",
		Config:    json.RawMessage(`{"questions":[{"id":"q1","answer":"a","points":2}]}`),
	})
	require.NoError(t, err)

	resp, err := svc.SubmitResponse(context.Background(), a.ID, 7, SubmitResponseRequest{
		Answers: map[string]string{"q1": "a"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, resp.Score, 0.001)
}

func TestSubmitResponse_CustomScorer(t *testing.T) {
	svc, _, db := newAssessmentFixture(t)
	program := seedProgram(t, db, 5)

	svc.Score = func(cfg model.AssessmentConfig, answers map[string]string) (float64, error) {
		return 77.0, nil
	}

	a, err := svc.CreateAssessment(context.Background(), AssessmentRequest{
		ProgramID: program.ID,
		Title:     "Weighted",
		Config:    json.RawMessage(`{"questions":[{"id":"q1","answer":"a","points":1}]}`),
	})
	require.NoError(t, err)

	resp, err := svc.SubmitResponse(context.Background(), a.ID, 1, SubmitResponseRequest{
		Answers: map[string]string{},
	})
	require.NoError(t, err)
	assert.InDelta(t, 77.0, resp.Score, 0.001)
}

func TestSubmitResponse_KeepsResponseWhenProgressRefreshFails(t *testing.T) {
	svc, enrollment, db := newAssessmentFixture(t)
	program := seedProgram(t, db, 10)
	_, err := enrollment.Enroll(context.Background(), 1, program.ID)
	require.NoError(t, err)

	a, err := svc.CreateAssessment(context.Background(), AssessmentRequest{
		ProgramID: program.ID,
		Title:     "Final check",
		Config:    json.RawMessage(`{"questions":[{"id":"q1","answer":"a","points":1}]}`),
	})
	require.NoError(t, err)

	// Break the progress refresh underneath the service. The committed
	// response must survive and the caller still gets it back.
	require.NoError(t, db.Migrator().DropTable(&model.Progress{}))

	resp, err := svc.SubmitResponse(context.Background(), a.ID, 1, SubmitResponseRequest{
		Answers: map[string]string{"q1": "a"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, resp.Score, 0.001)

	var count int64
	require.NoError(t, db.Model(&model.AssessmentResponse{}).
		Where("id = ?", resp.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

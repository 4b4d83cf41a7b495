package service

import (
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"time"
)

// activeWindow is how far back a progress or session row still counts
// as current for the dashboard KPIs.
const activeWindow = 30 * 24 * time.Hour

type Dashboard struct {
	Programs          int64                         `json:"programs"`
	ActiveStudents    int64                         `json:"activeStudents"`
	RecentMessages    int64                         `json:"recentMessages"`
	AvgScore          float64                       `json:"avgScore"`
	RecentEnrollments []repository.RecentEnrollment `json:"recentEnrollments"`
}

type DashboardService struct {
	ProgramRepo  *repository.ProgramRepository
	ProgressRepo *repository.ProgressRepository
	SessionRepo  *repository.SessionRepository
	EnrollRepo   *repository.EnrollmentRepository
}

func NewDashboardService(
	programRepo *repository.ProgramRepository,
	progressRepo *repository.ProgressRepository,
	sessionRepo *repository.SessionRepository,
	enrollRepo *repository.EnrollmentRepository,
) *DashboardService {
	return &DashboardService{
		ProgramRepo:  programRepo,
		ProgressRepo: progressRepo,
		SessionRepo:  sessionRepo,
		EnrollRepo:   enrollRepo,
	}
}

func (s *DashboardService) Overview(ctx context.Context) (*Dashboard, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	since := time.Now().Add(-activeWindow)
	d := &Dashboard{}

	ids, err := s.ProgramRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	d.Programs = int64(len(ids))

	if d.ActiveStudents, err = s.ProgressRepo.CountActiveStudents(ctx, since); err != nil {
		return nil, err
	}
	if d.RecentMessages, err = s.SessionRepo.CountSince(ctx, since); err != nil {
		return nil, err
	}

	avg, err := s.ProgressRepo.OverallAvgScore(ctx)
	if err != nil {
		return nil, err
	}
	d.AvgScore = util.Round2(avg)

	if d.RecentEnrollments, err = s.EnrollRepo.ListRecent(ctx, 10); err != nil {
		return nil, err
	}
	return d, nil
}

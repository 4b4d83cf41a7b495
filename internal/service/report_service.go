package service

import (
	"coachpro_backend/internal/config"
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"coachpro_backend/pkg/logger"
	"coachpro_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/go-redis/redis/v8"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const reportCacheTTL = 60 * time.Second

// ProgramReport is the aggregate view of one program over a date range.
// Source records whether the numbers came from stored snapshots or a
// live recomputation; the two must agree within rounding.
type ProgramReport struct {
	ProgramID      uint      `json:"programId"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	Enrollments    int64     `json:"enrollments"`
	CompletionRate float64   `json:"completionRate"`
	AvgScore       float64   `json:"avgScore"`
	Source         string    `json:"source"`
}

type ReportService struct {
	AnalyticsRepo  *repository.AnalyticsRepository
	ProgressRepo   *repository.ProgressRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgramRepo    *repository.ProgramRepository
	Redis          *redis.Client
	scheduler      *gocron.Scheduler
}

func NewReportService(
	analyticsRepo *repository.AnalyticsRepository,
	progressRepo *repository.ProgressRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	programRepo *repository.ProgramRepository,
	redisClient *redis.Client,
) *ReportService {
	return &ReportService{
		AnalyticsRepo:  analyticsRepo,
		ProgressRepo:   progressRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgramRepo:    programRepo,
		Redis:          redisClient,
	}
}

// RunReport aggregates a program's enrollments, completion rate and
// average score over [from, to). Stored daily snapshots are preferred
// when any exist for the range; otherwise the numbers are computed live.
// Results are cached briefly in Redis keyed by program and range.
func (s *ReportService) RunReport(ctx context.Context, programID uint, from, to time.Time) (*ProgramReport, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("report range is empty")
	}

	cacheKey := fmt.Sprintf("report:%d:%s:%s", programID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached ProgramReport
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	if _, err := s.ProgramRepo.FindByID(ctx, programID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgramNotFound
		}
		return nil, err
	}

	report, err := s.buildReport(ctx, programID, from, to)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(report); err == nil {
			s.Redis.Set(ctx, cacheKey, raw, reportCacheTTL)
		}
	}
	return report, nil
}

// RunReportAll builds one report row per program over the range. Rows
// use the same snapshot-or-live resolution as single-program reports.
func (s *ReportService) RunReportAll(ctx context.Context, from, to time.Time) ([]ProgramReport, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("report range is empty")
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	ids, err := s.ProgramRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]ProgramReport, 0, len(ids))
	for _, id := range ids {
		report, err := s.buildReport(ctx, id, from, to)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (s *ReportService) buildReport(ctx context.Context, programID uint, from, to time.Time) (*ProgramReport, error) {
	report := &ProgramReport{ProgramID: programID, From: from, To: to}

	snapshots, err := s.AnalyticsRepo.ListForProgram(ctx, programID, from, to)
	if err != nil {
		return nil, err
	}

	if len(snapshots) > 0 {
		// Rates are weighted by each day's active count; idle days
		// contribute nothing, keeping the result aligned with a live
		// recomputation over the same range.
		var completion, score float64
		var active int64
		for _, snap := range snapshots {
			report.Enrollments += int64(snap.Enrollments)
			w := float64(snap.Active)
			completion += snap.CompletionRate * w
			score += snap.AvgScore * w
			active += int64(snap.Active)
		}
		if active > 0 {
			report.CompletionRate = util.Round2(completion / float64(active))
			report.AvgScore = util.Round2(score / float64(active))
		}
		report.Source = "snapshot"
		return report, nil
	}

	stats, err := s.ProgressRepo.StatsForProgram(ctx, programID, from, to)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.EnrollmentRepo.CountForProgram(ctx, programID, from, to)
	if err != nil {
		return nil, err
	}

	report.Enrollments = enrollments
	report.CompletionRate = util.Round2(stats.CompletionRate * 100)
	report.AvgScore = util.Round2(stats.AvgScore)
	report.Source = "live"
	return report, nil
}

// RecomputeSnapshot rebuilds one program's snapshot for the given day
// from the live tables, replacing any existing row for that day.
func (s *ReportService) RecomputeSnapshot(ctx context.Context, programID uint, day time.Time) (*model.AnalyticsSnapshot, error) {
	ctx, cancel := storeCtx(ctx)
	defer cancel()

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	stats, err := s.ProgressRepo.StatsForProgram(ctx, programID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.EnrollmentRepo.CountForProgram(ctx, programID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	snap := &model.AnalyticsSnapshot{
		ProgramID:      programID,
		SnapshotDate:   dayStart,
		Enrollments:    int(enrollments),
		Active:         int(stats.Active),
		CompletionRate: util.Round2(stats.CompletionRate * 100),
		AvgScore:       util.Round2(stats.AvgScore),
	}
	if err := s.AnalyticsRepo.Upsert(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// RunDailySnapshots recomputes yesterday's snapshot for every program.
// Failures are counted and logged per program so one bad program does
// not stop the sweep.
func (s *ReportService) RunDailySnapshots(ctx context.Context) {
	yesterday := time.Now().AddDate(0, 0, -1)

	ids, err := s.ProgramRepo.ListIDs(ctx)
	if err != nil {
		logger.Log.Error("snapshot sweep: listing programs failed", zap.Error(err))
		monitoring.SnapshotRuns.WithLabelValues("error").Inc()
		return
	}

	for _, id := range ids {
		if _, err := s.RecomputeSnapshot(ctx, id, yesterday); err != nil {
			logger.Log.Error("snapshot recompute failed",
				zap.Uint("program_id", id), zap.Error(err))
			monitoring.SnapshotRuns.WithLabelValues("error").Inc()
			continue
		}
		monitoring.SnapshotRuns.WithLabelValues("success").Inc()
	}
}

// StartScheduler begins the daily snapshot job at the configured local
// time. It is a no-op when snapshots are disabled.
func (s *ReportService) StartScheduler(cfg config.SnapshotConfig) error {
	if !cfg.Enabled {
		return nil
	}

	s.scheduler = gocron.NewScheduler(time.Local)
	_, err := s.scheduler.Every(1).Day().At(cfg.RunAt).Do(func() {
		s.RunDailySnapshots(context.Background())
	})
	if err != nil {
		return fmt.Errorf("scheduling snapshot job: %w", err)
	}
	s.scheduler.StartAsync()
	logger.Log.Info("snapshot scheduler started", zap.String("run_at", cfg.RunAt))
	return nil
}

func (s *ReportService) StopScheduler() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// ExportReport writes the report plus its per-day snapshot rows as an
// xlsx workbook.
func (s *ReportService) ExportReport(ctx context.Context, w io.Writer, programID uint, from, to time.Time) error {
	report, err := s.RunReport(ctx, programID, from, to)
	if err != nil {
		return err
	}

	snapshots, err := s.AnalyticsRepo.ListForProgram(ctx, programID, from, to)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Enrollments", "Completion Rate (%)", "Avg Score"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, snap := range snapshots {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), snap.SnapshotDate.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), snap.Enrollments)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), snap.CompletionRate)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), snap.AvgScore)
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), report.Enrollments)
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), report.CompletionRate)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), report.AvgScore)

	_, err = f.WriteTo(w)
	return err
}

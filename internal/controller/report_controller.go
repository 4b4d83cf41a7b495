package controller

import (
	"coachpro_backend/internal/service"
	"coachpro_backend/internal/util"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// reportRange parses programId/from/to query params. A missing range
// defaults to the last 30 days; programID zero means no program filter.
func reportRange(ctx *gin.Context) (uint, time.Time, time.Time, bool) {
	var programID uint
	if raw := ctx.Query("programId"); raw != "" {
		id, ok := util.ParseUintParam(raw)
		if !ok {
			util.BadRequest(ctx, "programId must be a positive integer")
			return 0, time.Time{}, time.Time{}, false
		}
		programID = id
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := ctx.Query("from"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			util.BadRequest(ctx, "from must be YYYY-MM-DD")
			return 0, time.Time{}, time.Time{}, false
		}
		from = t
	}
	if raw := ctx.Query("to"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			util.BadRequest(ctx, "to must be YYYY-MM-DD")
			return 0, time.Time{}, time.Time{}, false
		}
		// The to date is inclusive on the wire, exclusive internally.
		to = t.AddDate(0, 0, 1)
	}

	return programID, from, to, true
}

// Run godoc
// @Summary Aggregate program reports over a date range
// @Description Without programId, returns one report row per program.
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param programId query int false "program id, all programs when omitted"
// @Param from query string false "YYYY-MM-DD, default 30 days back"
// @Param to query string false "YYYY-MM-DD inclusive, default today"
// @Success 200 {object} util.Response{data=service.ProgramReport}
// @Failure 404 {object} util.Response
// @Router /api/reports [get]
func (c *ReportController) Run(ctx *gin.Context) {
	programID, from, to, ok := reportRange(ctx)
	if !ok {
		return
	}

	if programID == 0 {
		reports, err := c.ReportService.RunReportAll(ctx.Request.Context(), from, to)
		if err != nil {
			util.ServiceError(ctx, err)
			return
		}
		util.Success(ctx, reports)
		return
	}

	report, err := c.ReportService.RunReport(ctx.Request.Context(), programID, from, to)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// Export godoc
// @Summary Download a program's report as an xlsx workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param programId query int true "program id"
// @Success 200 {file} binary
// @Router /api/reports/export [get]
func (c *ReportController) Export(ctx *gin.Context) {
	programID, from, to, ok := reportRange(ctx)
	if !ok {
		return
	}
	if programID == 0 {
		util.BadRequest(ctx, "programId must be a positive integer")
		return
	}

	filename := fmt.Sprintf("program-%d-report-%s.xlsx", programID, time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := c.ReportService.ExportReport(ctx.Request.Context(), ctx.Writer, programID, from, to); err != nil {
		util.ServiceError(ctx, err)
		return
	}
}

type SnapshotRequest struct {
	ProgramID uint   `json:"programId" binding:"required"`
	Date      string `json:"date" binding:"required"`
}

// RunSnapshot godoc
// @Summary Recompute one program's snapshot for a day
// @Tags reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SnapshotRequest true "program and day"
// @Success 200 {object} util.Response{data=model.AnalyticsSnapshot}
// @Router /api/snapshots/run [post]
func (c *ReportController) RunSnapshot(ctx *gin.Context) {
	var req SnapshotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		util.BadRequest(ctx, "date must be YYYY-MM-DD")
		return
	}

	snap, err := c.ReportService.RecomputeSnapshot(ctx.Request.Context(), req.ProgramID, day)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, snap)
}

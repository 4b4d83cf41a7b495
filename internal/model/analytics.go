package model

import "time"

// AnalyticsSnapshot is a per-day precomputed aggregate for one program.
// Snapshots only speed reporting up; a live recomputation over the same
// day must agree with the stored row within rounding. Recomputing a day
// replaces the existing row.
type AnalyticsSnapshot struct {
	BaseModel
	ProgramID      uint      `gorm:"uniqueIndex:idx_snapshot_program_date;not null" json:"programId"`
	SnapshotDate   time.Time `gorm:"uniqueIndex:idx_snapshot_program_date;type:date;not null" json:"snapshotDate"`
	Enrollments    int       `gorm:"default:0" json:"enrollments"`
	Active         int       `gorm:"default:0" json:"active"`
	CompletionRate float64   `gorm:"type:decimal(5,2);default:0" json:"completionRate"`
	AvgScore       float64   `gorm:"type:decimal(5,2);default:0" json:"avgScore"`
}

func (AnalyticsSnapshot) TableName() string {
	return "analytics_snapshots"
}

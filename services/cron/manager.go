package cron

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nmdong/VietThanhProductions/model"
	"github.com/nmdong/VietThanhProductions/utils/auth"
	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// DefaultPruneSchedule runs the denylist prune daily at 3 AM
	DefaultPruneSchedule = "0 0 3 * * *"
	// DefaultLogCleanupSchedule runs the run-log cleanup weekly, Sunday 4 AM
	DefaultLogCleanupSchedule = "0 0 4 * * 0"
	// LogRetention is how long job run logs are kept
	LogRetention = 90 * 24 * time.Hour
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron     *cron.Cron
	db       *gorm.DB
	denylist auth.Denylist
	schedule string
	now      func() time.Time
}

// NewCronManager creates a new cron manager. db is used for the run log
// and may be nil, in which case runs are only written to the log output.
func NewCronManager(db *gorm.DB, denylist auth.Denylist, pruneSchedule string) *CronManager {
	if pruneSchedule == "" {
		pruneSchedule = DefaultPruneSchedule
	}

	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:     c,
		db:       db,
		denylist: denylist,
		schedule: pruneSchedule,
		now:      time.Now,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	slog.Info("starting cron jobs")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	slog.Info("cron jobs started", "entries", len(m.cron.Entries()))
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	slog.Info("stopping cron jobs")
	ctx := m.cron.Stop()
	<-ctx.Done()
	slog.Info("cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Denylist rows past their token's expiry can never match a live token
	if _, err := m.cron.AddFunc(m.schedule, func() { m.PruneTokenDenylist() }); err != nil {
		return fmt.Errorf("register prune_token_denylist: %w", err)
	}

	if m.db != nil {
		if _, err := m.cron.AddFunc(DefaultLogCleanupSchedule, func() { m.CleanupJobLogs() }); err != nil {
			return fmt.Errorf("register cleanup_cron_logs: %w", err)
		}
	}

	slog.Info("all cron jobs registered")
	return nil
}

// logJobStart records the start of a cron job run
func (m *CronManager) logJobStart(jobName string) *model.CronJobLog {
	slog.Info("cron job started", "job", jobName)

	run := &model.CronJobLog{
		JobName:   jobName,
		Status:    model.CronStatusRunning,
		StartedAt: m.now(),
	}
	if m.db != nil {
		if err := m.db.Create(run).Error; err != nil {
			slog.Warn("failed to record cron job start", "job", jobName, "error", err)
		}
	}
	return run
}

// logJobComplete records successful completion of a cron job run
func (m *CronManager) logJobComplete(run *model.CronJobLog, message string, metadata map[string]interface{}) {
	finished := m.now()
	duration := finished.Sub(run.StartedAt).Milliseconds()
	slog.Info("cron job completed", "job", run.JobName, "message", message, "duration_ms", duration)

	m.finish(run, map[string]interface{}{
		"status":       model.CronStatusCompleted,
		"completed_at": finished,
		"duration":     duration,
		"message":      message,
		"metadata":     metadata,
	})
}

// logJobError records a failed cron job run
func (m *CronManager) logJobError(run *model.CronJobLog, err error) {
	finished := m.now()
	slog.Error("cron job failed", "job", run.JobName, "error", err)

	m.finish(run, map[string]interface{}{
		"status":       model.CronStatusFailed,
		"completed_at": finished,
		"duration":     finished.Sub(run.StartedAt).Milliseconds(),
		"error_msg":    err.Error(),
	})
}

func (m *CronManager) finish(run *model.CronJobLog, updates map[string]interface{}) {
	if m.db == nil || run.ID == 0 {
		return
	}
	if md, ok := updates["metadata"].(map[string]interface{}); ok && md != nil {
		updates["metadata"] = datatypes.JSONMap(md)
	} else {
		delete(updates, "metadata")
	}
	if err := m.db.Model(&model.CronJobLog{}).Where("id = ?", run.ID).Updates(updates).Error; err != nil {
		slog.Warn("failed to record cron job result", "job", run.JobName, "error", err)
	}
}

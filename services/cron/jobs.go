package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nmdong/VietThanhProductions/model"
)

// PruneTokenDenylist deletes revocation records whose token has expired.
// An expired token fails verification on its own, so dropping its record
// never makes it usable again.
func (m *CronManager) PruneTokenDenylist() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	run := m.logJobStart("prune_token_denylist")

	pruned, err := m.denylist.Prune(ctx, m.now())
	if err != nil {
		m.logJobError(run, err)
		return 0, err
	}

	m.logJobComplete(run, fmt.Sprintf("Pruned %d expired denylist entries", pruned),
		map[string]interface{}{"pruned": pruned})
	return pruned, nil
}

// CleanupJobLogs removes run logs older than LogRetention
func (m *CronManager) CleanupJobLogs() (int64, error) {
	if m.db == nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	run := m.logJobStart("cleanup_cron_logs")

	cutoff := m.now().Add(-LogRetention)
	result := m.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.CronJobLog{})
	if result.Error != nil {
		m.logJobError(run, result.Error)
		return 0, result.Error
	}

	slog.Debug("old cron logs removed", "cutoff", cutoff)
	m.logJobComplete(run, fmt.Sprintf("Removed %d cron job logs", result.RowsAffected),
		map[string]interface{}{"removed": result.RowsAffected})
	return result.RowsAffected, nil
}

package repo

import (
	"context"
	"encoding/json"

	"learnd/internal/domain"
	"learnd/internal/infra"
	"learnd/internal/sqlinline"
)

// UsageRepositoryPG implements domain.UsageRepository backed by PostgreSQL.
// Events are append-only; counters are derived at read time so the period
// reset is the database's concern.
type UsageRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUsageRepository creates a new UsageRepositoryPG.
func NewUsageRepository(sql infra.SQLExecutor) *UsageRepositoryPG {
	return &UsageRepositoryPG{sql: sql}
}

// RecordEvent appends a usage event. Delivery is at-least-once: a retried
// request may record twice, which is acceptable for the soft limits these
// counters drive.
func (r *UsageRepositoryPG) RecordEvent(ctx context.Context, userID string, kind domain.UsageEventKind, properties map[string]any) error {
	var props []byte
	if len(properties) > 0 {
		var err error
		if props, err = json.Marshal(properties); err != nil {
			return err
		}
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertUsageEvent, userID, string(kind), props)
	return err
}

// CurrentUsage returns the latest usage snapshot for the user. The snapshot
// may trail recent writes; gating tolerates that staleness.
func (r *UsageRepositoryPG) CurrentUsage(ctx context.Context, userID string) (domain.UsageCounters, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectUsageCounters, userID)
	var usage domain.UsageCounters
	if err := row.Scan(
		&usage.LessonsThisPeriod,
		&usage.ExportsThisPeriod,
		&usage.CustomFields,
		&usage.Templates,
	); err != nil {
		return domain.UsageCounters{}, err
	}
	return usage, nil
}

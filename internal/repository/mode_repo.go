package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pellet_panel/internal/models"
)

type ModeSQLite struct {
	db *sql.DB
}

func NewModeSQLite(db *sql.DB) *ModeSQLite {
	return &ModeSQLite{db: db}
}

var _ ModeRepo = (*ModeSQLite)(nil)

const (
	schedulerModeRowID = 1

	upsertModeSQL = `
		INSERT INTO scheduler_mode (id, enabled, semi_manual, return_to_auto_at, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			enabled=excluded.enabled,
			semi_manual=excluded.semi_manual,
			return_to_auto_at=excluded.return_to_auto_at,
			last_updated=excluded.last_updated
	`

	selectModeSQL = `
		SELECT enabled, semi_manual, return_to_auto_at, last_updated
		FROM scheduler_mode WHERE id=?
	`
)

// Save upserts the scheduler_mode row (id always 1). The write is a single
// statement, so it is atomic per record.
func (r *ModeSQLite) Save(ctx context.Context, m models.SchedulerMode) error {
	updated := m.LastUpdated
	if updated.IsZero() {
		updated = time.Now().UTC()
	} else {
		updated = updated.UTC()
	}

	var returnAt any
	if m.ReturnToAutoAt != nil {
		returnAt = m.ReturnToAutoAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertModeSQL,
		schedulerModeRowID,
		m.Enabled,
		m.SemiManual,
		returnAt,
		updated,
	)
	return err
}

// Load fetches the mode row. A missing row yields (nil, nil); callers treat
// that as the default disabled mode.
func (r *ModeSQLite) Load(ctx context.Context) (*models.SchedulerMode, error) {
	row := r.db.QueryRowContext(ctx, selectModeSQL, schedulerModeRowID)

	var m models.SchedulerMode
	var returnAt sql.NullTime
	if err := row.Scan(&m.Enabled, &m.SemiManual, &returnAt, &m.LastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if returnAt.Valid {
		t := returnAt.Time.UTC()
		m.ReturnToAutoAt = &t
	}
	m.LastUpdated = m.LastUpdated.UTC()
	return &m, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pellet_panel/internal/models"
)

type ScheduleSQLite struct {
	db *sql.DB
}

func NewScheduleSQLite(db *sql.DB) *ScheduleSQLite {
	return &ScheduleSQLite{db: db}
}

var _ ScheduleRepo = (*ScheduleSQLite)(nil)

const (
	selectIntervalsSQL = `
		SELECT weekday, start_clock, end_clock, power, fan
		FROM schedule_intervals
		ORDER BY weekday ASC, position ASC
	`

	deleteIntervalsSQL = `DELETE FROM schedule_intervals`

	insertIntervalSQL = `
		INSERT INTO schedule_intervals (weekday, position, start_clock, end_clock, power, fan)
		VALUES (?, ?, ?, ?, ?, ?)
	`
)

// Load returns the whole weekly schedule. Intervals keep their stored order
// within a day; the evaluator relies on it for its first-match tie-break.
func (r *ScheduleSQLite) Load(ctx context.Context) (models.WeeklySchedule, error) {
	rows, err := r.db.QueryContext(ctx, selectIntervalsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ws := models.WeeklySchedule{}
	for rows.Next() {
		var day int
		var iv models.ScheduleInterval
		if err := rows.Scan(&day, &iv.Start, &iv.End, &iv.Power, &iv.Fan); err != nil {
			return nil, err
		}
		ws[models.Weekday(day)] = append(ws[models.Weekday(day)], iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ws, nil
}

// Replace swaps the entire stored schedule for ws in one transaction.
func (r *ScheduleSQLite) Replace(ctx context.Context, ws models.WeeklySchedule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deleteIntervalsSQL); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}
	for day := models.Monday; day <= models.Sunday; day++ {
		for pos, iv := range ws[day] {
			if _, err := tx.ExecContext(ctx, insertIntervalSQL,
				int(day), pos, iv.Start, iv.End, iv.Power, iv.Fan,
			); err != nil {
				return fmt.Errorf("insert %s interval %d: %w", day, pos, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule replace: %w", err)
	}
	return nil
}

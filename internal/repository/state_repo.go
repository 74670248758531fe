package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pellet_panel/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

var _ StateRepo = (*StateSQLite)(nil)

const (
	stoveStateRowID = 1

	upsertStateSQL = `
		INSERT INTO stove_state (id, burning, power, fan, flame_temp_c, exhaust_temp_c, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			burning=excluded.burning,
			power=excluded.power,
			fan=excluded.fan,
			flame_temp_c=excluded.flame_temp_c,
			exhaust_temp_c=excluded.exhaust_temp_c,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, burning, power, fan, flame_temp_c, exhaust_temp_c, updated_at
		FROM stove_state WHERE id=?
	`
)

// Save upserts the stove_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, s models.StoveState) error {
	tsUTC := s.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertStateSQL,
		stoveStateRowID,
		s.Burning,
		s.Power,
		s.Fan,
		s.FlameTempC,
		s.ExhaustTempC,
		tsUTC,
	)
	return err
}

// Load fetches the single stove_state row. A missing row yields a zero
// StoveState (ID == 0), which callers treat as "no snapshot yet".
func (r *StateSQLite) Load(ctx context.Context) (models.StoveState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, stoveStateRowID)

	var s models.StoveState
	if err := row.Scan(
		&s.ID,
		&s.Burning,
		&s.Power,
		&s.Fan,
		&s.FlameTempC,
		&s.ExhaustTempC,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StoveState{}, nil
		}
		return models.StoveState{}, err
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"pellet_panel/internal/models"
)

// ModeRepo persists the single global SchedulerMode record.
// Load returns (nil, nil) when no record has been written yet.
type ModeRepo interface {
	Load(ctx context.Context) (*models.SchedulerMode, error)
	Save(ctx context.Context, m models.SchedulerMode) error
}

// ScheduleRepo persists the weekly heating schedule.
type ScheduleRepo interface {
	Load(ctx context.Context) (models.WeeklySchedule, error)
	Replace(ctx context.Context, ws models.WeeklySchedule) error
}

// StateRepo persists the last known stove snapshot.
type StateRepo interface {
	Load(ctx context.Context) (models.StoveState, error)
	Save(ctx context.Context, s models.StoveState) error
}

// EventRepo is the append-only stove log.
type EventRepo interface {
	Append(ctx context.Context, e models.StoveEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.StoveEvent, error)
}

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

type Repository struct {
	Mode     ModeRepo
	Schedule ScheduleRepo
	State    StateRepo
	Events   EventRepo
	Auth     Authorization
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		Mode:     NewModeSQLite(conn),
		Schedule: NewScheduleSQLite(conn),
		State:    NewStateSQLite(conn),
		Events:   NewEventSQLite(conn),
		Auth:     NewUserRepository(conn),
	}
}

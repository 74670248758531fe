package service

import (
	"context"
	"time"

	"pellet_panel/internal/models"
	"pellet_panel/internal/repository"
	"pellet_panel/internal/stove"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Stove executes device commands: vendor call first, then mode arbitration
// and snapshot bookkeeping.
type Stove interface {
	Ignite(ctx context.Context, power int, source models.CommandSource) error
	SetPower(ctx context.Context, level int, source models.CommandSource) error
	SetFan(ctx context.Context, level int, source models.CommandSource) error
	Shutdown(ctx context.Context, source models.CommandSource) error
}

// Monitoring exposes the persisted stove snapshot.
type Monitoring interface {
	GetState(ctx context.Context) (models.StoveState, error)
}

// SchedulerMode owns the global scheduling mode record and all of its
// transitions.
type SchedulerMode interface {
	GetMode(ctx context.Context) (models.SchedulerMode, error)
	SetEnabled(ctx context.Context, enabled bool) error
	ClearSemiManual(ctx context.Context) error
	OnManualCommand(ctx context.Context, source models.CommandSource) error
}

// Schedule reads and replaces the weekly heating schedule.
type Schedule interface {
	Get(ctx context.Context) (models.WeeklySchedule, error)
	Put(ctx context.Context, ws models.WeeklySchedule) error
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.StoveEvent, error)
}

// Scheduler runs the background loop that applies the schedule to the stove.
// Stop via context cancellation in main() for graceful shutdown.
type Scheduler interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Stove
	Monitoring
	SchedulerMode
	Schedule
	EventLog
	Scheduler
	Authorization
}

// NewService wires the repository layer and the vendor gateway into concrete
// services.
func NewService(repos *repository.Repository, gw stove.Gateway, signingKey string) *Service {
	arbiter := NewArbiterService(repos.Mode, repos.Schedule, repos.Events)
	stoveSvc := NewStoveService(gw, arbiter, repos.State, repos.Events)
	return &Service{
		Stove:         stoveSvc,
		Monitoring:    NewMonitoringService(repos.State),
		SchedulerMode: arbiter,
		Schedule:      NewScheduleService(repos.Schedule),
		EventLog:      NewEventLogService(repos.Events),
		Scheduler:     NewSchedulerService(arbiter, stoveSvc, gw, repos.Schedule, repos.State, repos.Events),
		Authorization: NewAuthService(repos.Auth, signingKey),
	}
}

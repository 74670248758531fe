package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pellet_panel/internal/models"
	"pellet_panel/internal/repository"
	"pellet_panel/internal/stove"
)

// ErrInvalidLevel rejects power/fan values outside 1..5 before any vendor
// call.
var ErrInvalidLevel = fmt.Errorf("level out of range %d..%d", models.MinLevel, models.MaxLevel)

// PostCommandError reports bookkeeping that failed after the stove already
// accepted the command. The physical action happened; routes degrade this to
// a warning instead of a failed request.
type PostCommandError struct {
	Err error
}

func (e *PostCommandError) Error() string {
	return "command executed, bookkeeping failed: " + e.Err.Error()
}

func (e *PostCommandError) Unwrap() error { return e.Err }

// StoveService runs every device command through the same pipeline:
// validate, vendor call, mode arbitration, snapshot persist, event append.
type StoveService struct {
	gateway   stove.Gateway
	arbiter   SchedulerMode
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	now       func() time.Time
}

func NewStoveService(gw stove.Gateway, arbiter SchedulerMode, stateRepo repository.StateRepo, eventRepo repository.EventRepo) *StoveService {
	return &StoveService{
		gateway:   gw,
		arbiter:   arbiter,
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

var _ Stove = (*StoveService)(nil)

func (s *StoveService) Ignite(ctx context.Context, power int, source models.CommandSource) error {
	if err := checkLevel(power); err != nil {
		return err
	}
	if err := s.gateway.Ignite(ctx, power); err != nil {
		return err
	}
	return s.afterCommand(ctx, source, models.EventIgnite, "stove ignited",
		func(st *models.StoveState) {
			st.Burning = true
			st.Power = power
			if st.Fan < models.MinLevel {
				st.Fan = models.MinLevel
			}
		},
		map[string]any{"power": power})
}

func (s *StoveService) SetPower(ctx context.Context, level int, source models.CommandSource) error {
	if err := checkLevel(level); err != nil {
		return err
	}
	if err := s.gateway.SetPower(ctx, level); err != nil {
		return err
	}
	return s.afterCommand(ctx, source, models.EventPowerChange, "power level changed",
		func(st *models.StoveState) { st.Power = level },
		map[string]any{"power": level})
}

func (s *StoveService) SetFan(ctx context.Context, level int, source models.CommandSource) error {
	if err := checkLevel(level); err != nil {
		return err
	}
	if err := s.gateway.SetFan(ctx, level); err != nil {
		return err
	}
	return s.afterCommand(ctx, source, models.EventFanChange, "fan level changed",
		func(st *models.StoveState) { st.Fan = level },
		map[string]any{"fan": level})
}

func (s *StoveService) Shutdown(ctx context.Context, source models.CommandSource) error {
	if err := s.gateway.Shutdown(ctx); err != nil {
		return err
	}
	return s.afterCommand(ctx, source, models.EventShutdown, "stove shut down",
		func(st *models.StoveState) {
			st.Burning = false
			st.Power = 0
			st.Fan = 0
		},
		nil)
}

func checkLevel(level int) error {
	if level < models.MinLevel || level > models.MaxLevel {
		return fmt.Errorf("%w: got %d", ErrInvalidLevel, level)
	}
	return nil
}

// afterCommand runs once the vendor accepted the command: arbitration first,
// then the snapshot for realtime sync, then the log entry. Failures here are
// collected rather than short-circuited so a dead store never hides a mode
// transition and vice versa.
func (s *StoveService) afterCommand(ctx context.Context, source models.CommandSource, eventType, desc string, mutate func(*models.StoveState), meta map[string]any) error {
	var errs []error

	if err := s.arbiter.OnManualCommand(ctx, source); err != nil {
		errs = append(errs, fmt.Errorf("update scheduler mode: %w", err))
	}

	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("load stove snapshot: %w", err))
	} else {
		if st.ID == 0 {
			st.ID = 1
		}
		mutate(&st)
		st.UpdatedAt = s.now().UTC()
		if err := s.stateRepo.Save(ctx, st); err != nil {
			errs = append(errs, fmt.Errorf("save stove snapshot: %w", err))
		}
	}

	if meta == nil {
		meta = map[string]any{}
	}
	meta["source"] = string(source)
	if err := s.eventRepo.Append(ctx, models.StoveEvent{
		OccurredAt:  s.now().UTC(),
		Type:        eventType,
		Description: desc,
		Metadata:    meta,
	}); err != nil {
		errs = append(errs, fmt.Errorf("append event: %w", err))
	}

	if len(errs) > 0 {
		return &PostCommandError{Err: errors.Join(errs...)}
	}
	return nil
}

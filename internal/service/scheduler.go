package service

import (
	"context"
	"time"

	"pellet_panel/internal/models"
	"pellet_panel/internal/repository"
	"pellet_panel/internal/schedule"
	"pellet_panel/internal/stove"
)

// SchedulerService is the background loop driving the stove from the weekly
// schedule. Each tick reconciles in three steps: sync externally made
// changes, retire an expired semi-manual override, then apply the active
// interval. Errors are dropped; the next tick retries from scratch.
type SchedulerService struct {
	modes        SchedulerMode
	stove        Stove
	gateway      stove.Gateway
	scheduleRepo repository.ScheduleRepo
	stateRepo    repository.StateRepo
	eventRepo    repository.EventRepo
	now          func() time.Time
}

func NewSchedulerService(modes SchedulerMode, stoveSvc Stove, gw stove.Gateway, scheduleRepo repository.ScheduleRepo, stateRepo repository.StateRepo, eventRepo repository.EventRepo) *SchedulerService {
	return &SchedulerService{
		modes:        modes,
		stove:        stoveSvc,
		gateway:      gw,
		scheduleRepo: scheduleRepo,
		stateRepo:    stateRepo,
		eventRepo:    eventRepo,
		now:          time.Now,
	}
}

var _ Scheduler = (*SchedulerService)(nil)

// Run ticks at the given interval until ctx is canceled.
func (s *SchedulerService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one reconciliation pass.
func (s *SchedulerService) Tick(ctx context.Context) {
	s.syncExternal(ctx)

	mode, err := s.modes.GetMode(ctx)
	if err != nil || !mode.Enabled {
		return
	}

	now := s.now()
	if mode.SemiManual {
		if mode.ReturnToAutoAt != nil && !now.Before(*mode.ReturnToAutoAt) {
			_ = s.modes.ClearSemiManual(ctx)
		}
		// Apply the schedule again on the next tick.
		return
	}

	ws, err := s.scheduleRepo.Load(ctx)
	if err != nil {
		return
	}
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return
	}

	iv, active := schedule.ActiveInterval(ws, now)
	switch {
	case active && !st.Burning:
		_ = s.stove.Ignite(ctx, iv.Power, models.SourceScheduler)
		if st.Fan != iv.Fan {
			_ = s.stove.SetFan(ctx, iv.Fan, models.SourceScheduler)
		}
	case active:
		if st.Power != iv.Power {
			_ = s.stove.SetPower(ctx, iv.Power, models.SourceScheduler)
		}
		if st.Fan != iv.Fan {
			_ = s.stove.SetFan(ctx, iv.Fan, models.SourceScheduler)
		}
	case st.Burning:
		_ = s.stove.Shutdown(ctx, models.SourceScheduler)
	}
}

// syncExternal reconciles the persisted snapshot with the vendor's live
// status. Changes made on the stove's own panel show up here; they never
// touch the scheduler mode.
func (s *SchedulerService) syncExternal(ctx context.Context) {
	live, err := s.gateway.Status(ctx)
	if err != nil {
		return
	}
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return
	}

	changedControls := st.Burning != live.Burning || st.Power != live.Power || st.Fan != live.Fan

	if st.ID == 0 {
		st.ID = 1
	}
	st.Burning = live.Burning
	st.Power = live.Power
	st.Fan = live.Fan
	st.FlameTempC = live.FlameTempC
	st.ExhaustTempC = live.ExhaustTempC
	st.UpdatedAt = s.now().UTC()
	if err := s.stateRepo.Save(ctx, st); err != nil {
		return
	}

	if changedControls {
		_ = s.eventRepo.Append(ctx, models.StoveEvent{
			OccurredAt:  s.now().UTC(),
			Type:        models.EventExternalChange,
			Description: "stove state changed outside the panel",
			Metadata: map[string]any{
				"burning": live.Burning,
				"power":   live.Power,
				"fan":     live.Fan,
				"source":  string(models.SourceExternal),
			},
		})
	}
}

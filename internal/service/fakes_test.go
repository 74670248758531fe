package service

import (
	"context"
	"time"

	"pellet_panel/internal/models"
	"pellet_panel/internal/stove"
)

// ---- Repository fakes ----

type fakeModeRepo struct {
	mode    *models.SchedulerMode
	loadErr error
	saveErr error
	saves   []models.SchedulerMode
}

func (f *fakeModeRepo) Load(ctx context.Context) (*models.SchedulerMode, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.mode, nil
}

func (f *fakeModeRepo) Save(ctx context.Context, m models.SchedulerMode) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, m)
	saved := m
	f.mode = &saved
	return nil
}

type fakeScheduleRepo struct {
	ws         models.WeeklySchedule
	loadErr    error
	replaceErr error
	replaced   []models.WeeklySchedule
}

func (f *fakeScheduleRepo) Load(ctx context.Context) (models.WeeklySchedule, error) {
	return f.ws, f.loadErr
}

func (f *fakeScheduleRepo) Replace(ctx context.Context, ws models.WeeklySchedule) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = append(f.replaced, ws)
	f.ws = ws
	return nil
}

type fakeStateRepo struct {
	state   models.StoveState
	loadErr error
	saveErr error
	saves   []models.StoveState
}

func (f *fakeStateRepo) Load(ctx context.Context) (models.StoveState, error) {
	return f.state, f.loadErr
}

func (f *fakeStateRepo) Save(ctx context.Context, s models.StoveState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, s)
	f.state = s
	return nil
}

type fakeEventRepo struct {
	events    []models.StoveEvent
	appendErr error
	listErr   error
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.StoveEvent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.StoveEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.StoveEvent
	for _, e := range f.events {
		if !from.IsZero() && e.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && e.OccurredAt.After(to) {
			continue
		}
		if typ != "" && e.Type != typ {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) typesSeen() []string {
	var out []string
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

// ---- Gateway fake ----

type fakeGateway struct {
	igniteErr   error
	powerErr    error
	fanErr      error
	shutdownErr error
	statusErr   error
	status      stove.Status

	igniteCalls   []int
	powerCalls    []int
	fanCalls      []int
	shutdownCalls int
	statusCalls   int
}

func (f *fakeGateway) Ignite(ctx context.Context, power int) error {
	if f.igniteErr != nil {
		return f.igniteErr
	}
	f.igniteCalls = append(f.igniteCalls, power)
	return nil
}

func (f *fakeGateway) SetPower(ctx context.Context, level int) error {
	if f.powerErr != nil {
		return f.powerErr
	}
	f.powerCalls = append(f.powerCalls, level)
	return nil
}

func (f *fakeGateway) SetFan(ctx context.Context, level int) error {
	if f.fanErr != nil {
		return f.fanErr
	}
	f.fanCalls = append(f.fanCalls, level)
	return nil
}

func (f *fakeGateway) Shutdown(ctx context.Context) error {
	if f.shutdownErr != nil {
		return f.shutdownErr
	}
	f.shutdownCalls++
	return nil
}

func (f *fakeGateway) Status(ctx context.Context) (stove.Status, error) {
	f.statusCalls++
	if f.statusErr != nil {
		return stove.Status{}, f.statusErr
	}
	return f.status, nil
}

// ---- Arbiter fake (for tests that only care about the call) ----

type fakeArbiter struct {
	mode      models.SchedulerMode
	manualErr error
	sources   []models.CommandSource
	cleared   int
}

func (f *fakeArbiter) GetMode(ctx context.Context) (models.SchedulerMode, error) {
	return f.mode, nil
}

func (f *fakeArbiter) SetEnabled(ctx context.Context, enabled bool) error {
	f.mode.Enabled = enabled
	f.mode.SemiManual = false
	return nil
}

func (f *fakeArbiter) ClearSemiManual(ctx context.Context) error {
	f.cleared++
	f.mode.SemiManual = false
	f.mode.ReturnToAutoAt = nil
	return nil
}

func (f *fakeArbiter) OnManualCommand(ctx context.Context, source models.CommandSource) error {
	f.sources = append(f.sources, source)
	return f.manualErr
}

// ---- Clock helpers ----

// localMonday returns 2025-09-01 (a Monday) at the given clock time, local.
func localMonday(hour, minute int) time.Time {
	return time.Date(2025, time.September, 1, hour, minute, 0, 0, time.Local)
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

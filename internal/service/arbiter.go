package service

import (
	"context"
	"time"

	"pellet_panel/internal/models"
	"pellet_panel/internal/repository"
	"pellet_panel/internal/schedule"
)

// ArbiterService decides when a manual command suspends automatic scheduling
// and when the schedule takes back over. It owns the single global
// SchedulerMode record.
//
// The read-decide-write sequence is deliberately unlocked: two concurrent
// manual commands can both observe SemiManual=false and both write, and
// either outcome is a valid "override now active" record.
type ArbiterService struct {
	modeRepo     repository.ModeRepo
	scheduleRepo repository.ScheduleRepo
	eventRepo    repository.EventRepo
	now          func() time.Time
}

func NewArbiterService(modeRepo repository.ModeRepo, scheduleRepo repository.ScheduleRepo, eventRepo repository.EventRepo) *ArbiterService {
	return &ArbiterService{
		modeRepo:     modeRepo,
		scheduleRepo: scheduleRepo,
		eventRepo:    eventRepo,
		now:          time.Now,
	}
}

var _ SchedulerMode = (*ArbiterService)(nil)

// GetMode returns the persisted mode record, or the disabled default when
// nothing has been written yet.
func (s *ArbiterService) GetMode(ctx context.Context) (models.SchedulerMode, error) {
	m, err := s.modeRepo.Load(ctx)
	if err != nil {
		return models.SchedulerMode{}, err
	}
	if m == nil {
		return models.DefaultSchedulerMode(), nil
	}
	return *m, nil
}

// SetEnabled turns automatic scheduling on or off. Either direction resets
// any semi-manual override.
func (s *ArbiterService) SetEnabled(ctx context.Context, enabled bool) error {
	if err := s.modeRepo.Save(ctx, models.SchedulerMode{
		Enabled:     enabled,
		SemiManual:  false,
		LastUpdated: s.now().UTC(),
	}); err != nil {
		return err
	}

	desc := "scheduler disabled"
	if enabled {
		desc = "scheduler enabled"
	}
	return s.eventRepo.Append(ctx, models.StoveEvent{
		OccurredAt:  s.now().UTC(),
		Type:        models.EventModeChange,
		Description: desc,
		Metadata:    map[string]any{"enabled": enabled},
	})
}

// ClearSemiManual ends a semi-manual override, preserving Enabled.
func (s *ArbiterService) ClearSemiManual(ctx context.Context) error {
	mode, err := s.GetMode(ctx)
	if err != nil {
		return err
	}
	wasOverridden := mode.SemiManual

	mode.SemiManual = false
	mode.ReturnToAutoAt = nil
	mode.LastUpdated = s.now().UTC()
	if err := s.modeRepo.Save(ctx, mode); err != nil {
		return err
	}

	if !wasOverridden {
		return nil
	}
	return s.eventRepo.Append(ctx, models.StoveEvent{
		OccurredAt:  s.now().UTC(),
		Type:        models.EventModeChange,
		Description: "semi-manual override cleared, back on schedule",
	})
}

// OnManualCommand is invoked after every successfully executed device
// command. Only the first manual command while the schedule is active flips
// the mode: the override window is fixed at the moment of first intervention,
// and commands from the scheduler itself or from external state sync never
// count.
func (s *ArbiterService) OnManualCommand(ctx context.Context, source models.CommandSource) error {
	if source != models.SourceManual {
		return nil
	}

	mode, err := s.GetMode(ctx)
	if err != nil {
		return err
	}
	if !mode.Enabled || mode.SemiManual {
		return nil
	}

	ws, err := s.scheduleRepo.Load(ctx)
	if err != nil {
		return err
	}

	// No future schedule event means the override holds until explicitly
	// cleared.
	var returnAt *time.Time
	if next, ok := schedule.NextChange(ws, s.now()); ok {
		returnAt = &next
	}
	return s.enterSemiManual(ctx, mode, returnAt)
}

// enterSemiManual writes the override record in a single store write.
func (s *ArbiterService) enterSemiManual(ctx context.Context, mode models.SchedulerMode, returnAt *time.Time) error {
	mode.SemiManual = true
	mode.ReturnToAutoAt = returnAt
	mode.LastUpdated = s.now().UTC()
	if err := s.modeRepo.Save(ctx, mode); err != nil {
		return err
	}

	meta := map[string]any{}
	if returnAt != nil {
		meta["return_to_auto_at"] = returnAt.UTC()
	}
	return s.eventRepo.Append(ctx, models.StoveEvent{
		OccurredAt:  s.now().UTC(),
		Type:        models.EventModeChange,
		Description: "manual command, schedule suspended",
		Metadata:    meta,
	})
}

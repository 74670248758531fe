package service

import (
	"context"
	"errors"
	"fmt"

	"pellet_panel/internal/models"
	"pellet_panel/internal/repository"
)

// ErrInvalidSchedule marks a schedule rejected by validation.
var ErrInvalidSchedule = errors.New("invalid schedule")

// ScheduleService validates and stores the weekly schedule. Same-day overlap
// is allowed; the evaluator resolves it by stored order.
type ScheduleService struct {
	scheduleRepo repository.ScheduleRepo
}

func NewScheduleService(scheduleRepo repository.ScheduleRepo) *ScheduleService {
	return &ScheduleService{scheduleRepo: scheduleRepo}
}

var _ Schedule = (*ScheduleService)(nil)

func (s *ScheduleService) Get(ctx context.Context) (models.WeeklySchedule, error) {
	return s.scheduleRepo.Load(ctx)
}

func (s *ScheduleService) Put(ctx context.Context, ws models.WeeklySchedule) error {
	if err := ws.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSchedule, err)
	}
	return s.scheduleRepo.Replace(ctx, ws)
}

package service

import (
	"context"
	"time"

	"pellet_panel/internal/models"
	"pellet_panel/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

var _ Monitoring = (*MonitoringService)(nil)

// GetState returns the latest persisted stove snapshot, or a cold baseline
// when nothing has been recorded yet.
func (s *MonitoringService) GetState(ctx context.Context) (models.StoveState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.StoveState{}, err
	}
	if state.ID == 0 {
		return s.baselineState(), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

// baselineState is the snapshot an uninitialized DB stands for: stove off.
func (s *MonitoringService) baselineState() models.StoveState {
	return models.StoveState{
		ID:        1, // DB schema enforces single-row state with id=1
		Burning:   false,
		UpdatedAt: time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pellet_panel/internal/models"
)

func TestMonitoring_GetState_BaselineWhenEmpty(t *testing.T) {
	s := NewMonitoringService(&fakeStateRepo{})
	st, err := s.GetState(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.ID != 1 || st.Burning {
		t.Fatalf("expected cold baseline, got %+v", st)
	}
	if st.UpdatedAt.IsZero() {
		t.Fatalf("baseline must carry a timestamp")
	}
}

func TestMonitoring_GetState_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	repo := &fakeStateRepo{state: models.StoveState{
		ID:        1,
		Burning:   true,
		Power:     3,
		UpdatedAt: time.Date(2025, 9, 1, 12, 0, 0, 0, loc),
	}}
	s := NewMonitoringService(repo)
	st, err := s.GetState(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.UpdatedAt.Location() != time.UTC {
		t.Fatalf("UpdatedAt not UTC: %v", st.UpdatedAt)
	}
	if !st.Burning || st.Power != 3 {
		t.Fatalf("state mangled: %+v", st)
	}
}

func TestMonitoring_GetState_PropagatesErrors(t *testing.T) {
	s := NewMonitoringService(&fakeStateRepo{loadErr: errors.New("db down")})
	if _, err := s.GetState(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

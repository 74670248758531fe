package service

import (
	"context"
	"errors"
	"testing"

	"pellet_panel/internal/models"
)

func TestSchedule_PutValidSchedule(t *testing.T) {
	repo := &fakeScheduleRepo{}
	s := NewScheduleService(repo)
	ws := models.WeeklySchedule{
		models.Monday:   {{Start: "06:00", End: "08:00", Power: 3, Fan: 2}},
		models.Saturday: {{Start: "08:00", End: "12:00", Power: 2, Fan: 2}, {Start: "18:00", End: "22:30", Power: 4, Fan: 3}},
	}
	if err := s.Put(context.Background(), ws); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.replaced) != 1 {
		t.Fatalf("expected one Replace call")
	}
}

func TestSchedule_PutRejectsBadIntervals(t *testing.T) {
	repo := &fakeScheduleRepo{}
	s := NewScheduleService(repo)
	bad := []models.WeeklySchedule{
		{models.Monday: {{Start: "08:00", End: "06:00", Power: 3, Fan: 2}}},
		{models.Monday: {{Start: "06:00", End: "08:00", Power: 9, Fan: 2}}},
		{models.Monday: {{Start: "junk", End: "08:00", Power: 3, Fan: 2}}},
	}
	for i, ws := range bad {
		if err := s.Put(context.Background(), ws); !errors.Is(err, ErrInvalidSchedule) {
			t.Fatalf("case %d: expected ErrInvalidSchedule, got %v", i, err)
		}
	}
	if len(repo.replaced) != 0 {
		t.Fatalf("invalid schedule must not reach the store")
	}
}

func TestSchedule_PutAllowsOverlap(t *testing.T) {
	// Overlap is resolved by the evaluator's stored-order tie-break, not
	// rejected on write.
	repo := &fakeScheduleRepo{}
	s := NewScheduleService(repo)
	ws := models.WeeklySchedule{
		models.Monday: {
			{Start: "06:00", End: "10:00", Power: 2, Fan: 1},
			{Start: "08:00", End: "12:00", Power: 4, Fan: 2},
		},
	}
	if err := s.Put(context.Background(), ws); err != nil {
		t.Fatalf("overlap rejected: %v", err)
	}
}

package models

import (
	"errors"
	"fmt"
)

// ScheduleInterval is one row of a daily schedule: a start–end wall-clock
// window ("HH:MM", local time, never spanning midnight) and the stove levels
// to hold while it is active.
type ScheduleInterval struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM", must be after Start
	Power int    `json:"power"` // 1..5
	Fan   int    `json:"fan"`   // 1..5
}

// WeeklySchedule maps each weekday to its ordered intervals. Days without
// entries simply have no key.
type WeeklySchedule map[Weekday][]ScheduleInterval

const (
	MinLevel = 1
	MaxLevel = 5

	minutesPerDay = 24 * 60
)

var errBadClock = errors.New("clock value must be \"HH:MM\"")

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w, got %q", errBadClock, s)
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("%w, got %q", errBadClock, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}

// Minutes returns the interval bounds as minutes since midnight.
func (iv ScheduleInterval) Minutes() (start, end int, err error) {
	if start, err = ParseClock(iv.Start); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(iv.End); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Validate checks the interval shape: parsable bounds, start < end within the
// same day, levels in range. Overlap with sibling intervals is deliberately
// not checked here.
func (iv ScheduleInterval) Validate() error {
	start, end, err := iv.Minutes()
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("interval %s-%s: start must be before end", iv.Start, iv.End)
	}
	if end > minutesPerDay {
		return fmt.Errorf("interval %s-%s: end beyond midnight", iv.Start, iv.End)
	}
	if iv.Power < MinLevel || iv.Power > MaxLevel {
		return fmt.Errorf("power %d out of range %d..%d", iv.Power, MinLevel, MaxLevel)
	}
	if iv.Fan < MinLevel || iv.Fan > MaxLevel {
		return fmt.Errorf("fan %d out of range %d..%d", iv.Fan, MinLevel, MaxLevel)
	}
	return nil
}

// Validate checks every interval of every day.
func (ws WeeklySchedule) Validate() error {
	for day, intervals := range ws {
		if !day.Valid() {
			return fmt.Errorf("invalid weekday key %d", int(day))
		}
		for i, iv := range intervals {
			if err := iv.Validate(); err != nil {
				return fmt.Errorf("%s interval %d: %w", day, i, err)
			}
		}
	}
	return nil
}

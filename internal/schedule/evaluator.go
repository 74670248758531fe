// Package schedule evaluates a WeeklySchedule against a point in time. All
// functions are pure; malformed intervals are skipped rather than reported.
package schedule

import (
	"time"

	"pellet_panel/internal/models"
)

// ActiveInterval returns the interval covering now, if any. When intervals
// overlap the first match in stored order wins; keeping intervals disjoint is
// the schedule editor's job.
func ActiveInterval(ws models.WeeklySchedule, now time.Time) (models.ScheduleInterval, bool) {
	minute := now.Hour()*60 + now.Minute()
	for _, iv := range ws[models.WeekdayOf(now)] {
		start, end, err := iv.Minutes()
		if err != nil {
			continue
		}
		if start <= minute && minute < end {
			return iv, true
		}
	}
	return models.ScheduleInterval{}, false
}

// NextChange returns the nearest future schedule boundary: the end of the
// currently active interval, the start of a later interval today, or the
// first start on a following day, scanning up to a full week ahead. The
// second return is false when the schedule holds no intervals at all.
func NextChange(ws models.WeeklySchedule, now time.Time) (time.Time, bool) {
	minute := now.Hour()*60 + now.Minute()
	today := models.WeekdayOf(now)

	if at, ok := nextBoundaryAfter(ws[today], minute); ok {
		return clockOn(now, 0, at), true
	}
	for offset := 1; offset <= 7; offset++ {
		day := models.Weekday((int(today) + offset) % 7)
		if at, ok := firstStart(ws[day]); ok {
			return clockOn(now, offset, at), true
		}
	}
	return time.Time{}, false
}

// nextBoundaryAfter finds the earliest interval start or end strictly later
// than the given minute of day.
func nextBoundaryAfter(intervals []models.ScheduleInterval, minute int) (int, bool) {
	best, found := 0, false
	for _, iv := range intervals {
		start, end, err := iv.Minutes()
		if err != nil {
			continue
		}
		for _, b := range [2]int{start, end} {
			if b > minute && (!found || b < best) {
				best, found = b, true
			}
		}
	}
	return best, found
}

// firstStart finds the earliest interval start of a day.
func firstStart(intervals []models.ScheduleInterval) (int, bool) {
	best, found := 0, false
	for _, iv := range intervals {
		start, _, err := iv.Minutes()
		if err != nil {
			continue
		}
		if !found || start < best {
			best, found = start, true
		}
	}
	return best, found
}

// clockOn builds the local timestamp for minuteOfDay on now's date plus
// dayOffset days.
func clockOn(now time.Time, dayOffset, minuteOfDay int) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, dayOffset).Add(time.Duration(minuteOfDay) * time.Minute)
}

package models

import (
	"fmt"
	"strings"
	"time"
)

// Weekday indexes days Monday=0 .. Sunday=6. It is the only schedule lookup
// key; day names appear solely at the JSON boundary.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// WeekdayOf converts a time.Time (Sunday=0 convention) to a Weekday.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday accepts a lowercase or capitalized English day name.
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("weekday out of range: %d", int(d))
	}
	return []byte(weekdayNames[d]), nil
}

func (d *Weekday) UnmarshalText(b []byte) error {
	day, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*d = day
	return nil
}

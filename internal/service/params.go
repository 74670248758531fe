package service

import "time"

// LogFilter narrows event listing by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", or one of the models.Event* constants
}

package models

import "time"

// SchedulerMode is the single system-wide scheduling mode record. It models
// one physical stove, so it is global rather than per-user.
//
// Enabled=false        -> automatic scheduling is off entirely.
// Enabled, !SemiManual -> the schedule drives the stove.
// Enabled, SemiManual  -> a manual command suspended the schedule;
//                         ReturnToAutoAt says when to resume (nil = until
//                         explicitly cleared).
type SchedulerMode struct {
	Enabled        bool       `json:"enabled"`
	SemiManual     bool       `json:"semi_manual"`
	ReturnToAutoAt *time.Time `json:"return_to_auto_at,omitempty"`
	LastUpdated    time.Time  `json:"last_updated"`
}

// DefaultSchedulerMode is the record an absent row stands for.
func DefaultSchedulerMode() SchedulerMode {
	return SchedulerMode{Enabled: false, SemiManual: false}
}

package models

import "time"

// StoveState is the last known snapshot of the stove, persisted after every
// command and vendor sync so browsers can stream it without hitting the
// vendor API.
type StoveState struct {
	ID           int       `json:"id"`
	Burning      bool      `json:"burning"`
	Power        int       `json:"power,omitempty"` // 1..5 while burning
	Fan          int       `json:"fan,omitempty"`   // 1..5 while burning
	FlameTempC   float64   `json:"flame_temp_c,omitempty"`
	ExhaustTempC float64   `json:"exhaust_temp_c,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Package stove talks to the pellet stove vendor's HTTP API.
package stove

import (
	"context"
	"errors"
	"fmt"
)

// Status is the vendor's live view of the stove.
type Status struct {
	Burning      bool    `json:"burning"`
	Power        int     `json:"power"`
	Fan          int     `json:"fan"`
	FlameTempC   float64 `json:"flame_temp_c"`
	ExhaustTempC float64 `json:"exhaust_temp_c"`
}

// Gateway executes physical stove actions. Implementations report
// vendor-specific failures; callers never retry commands themselves.
type Gateway interface {
	Ignite(ctx context.Context, power int) error
	SetPower(ctx context.Context, level int) error
	SetFan(ctx context.Context, level int) error
	Shutdown(ctx context.Context) error
	Status(ctx context.Context) (Status, error)
}

// ErrTimeout marks a vendor call that exceeded its deadline.
var ErrTimeout = errors.New("stove: vendor request timed out")

// VendorError is a fault reported by the stove itself (as opposed to a
// transport failure).
type VendorError struct {
	Code    string
	Message string
}

func (e *VendorError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("stove: vendor fault %s", e.Code)
	}
	return fmt.Sprintf("stove: vendor fault %s: %s", e.Code, e.Message)
}

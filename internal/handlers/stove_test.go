package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"pellet_panel/internal/models"
	"pellet_panel/internal/service"
)

func TestStoveHandlers_CommandPipeline(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	mon := &mockMonitoring{state: models.StoveState{ID: 1, Burning: true, Power: 3, Fan: 2, UpdatedAt: time.Now()}}
	st := &mockStove{}
	s := &service.Service{
		Authorization: auth,
		Monitoring:    mon,
		Stove:         st,
	}
	r := newTestRouter(s)

	// GET state requires auth -> 401 without header
	w := doAuthed(r, http.MethodGet, "/api/v1/stove/state", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	// With auth -> 200 and state body
	w = doAuthed(r, http.MethodGet, "/api/v1/stove/state", "valid", "")
	if w.Code != http.StatusOK {
		t.Fatalf("state status=%d, body=%s", w.Code, w.Body.String())
	}
	var got models.StoveState
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if !got.Burning || got.Power != 3 {
		t.Fatalf("unexpected state: %+v", got)
	}

	// POST /ignite -> 200, calls Stove.Ignite with the manual source
	w = doAuthed(r, http.MethodPost, "/api/v1/stove/ignite", "valid", `{"power":4}`)
	if w.Code != http.StatusOK {
		t.Fatalf("ignite status=%d, body=%s", w.Code, w.Body.String())
	}
	if st.igniteCalls != 1 || st.lastPower != 4 {
		t.Fatalf("ignite calls=%d power=%d", st.igniteCalls, st.lastPower)
	}
	if st.lastSource != models.SourceManual {
		t.Fatalf("expected manual source, got %q", st.lastSource)
	}
	var resp struct {
		Status string            `json:"status"`
		State  models.StoveState `json:"state"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusIgnited {
		t.Fatalf("expected status %q, got %q", statusIgnited, resp.Status)
	}
	if !resp.State.Burning {
		t.Fatalf("state missing/invalid in response: %+v", resp.State)
	}

	// POST /power and /fan -> 200, pass the level through
	w = doAuthed(r, http.MethodPost, "/api/v1/stove/power", "valid", `{"level":5}`)
	if w.Code != http.StatusOK || st.powerCalls != 1 || st.lastLevel != 5 {
		t.Fatalf("power status=%d calls=%d level=%d", w.Code, st.powerCalls, st.lastLevel)
	}
	w = doAuthed(r, http.MethodPost, "/api/v1/stove/fan", "valid", `{"level":2}`)
	if w.Code != http.StatusOK || st.fanCalls != 1 || st.lastLevel != 2 {
		t.Fatalf("fan status=%d calls=%d level=%d", w.Code, st.fanCalls, st.lastLevel)
	}

	// POST /shutdown -> 200
	w = doAuthed(r, http.MethodPost, "/api/v1/stove/shutdown", "valid", "")
	if w.Code != http.StatusOK {
		t.Fatalf("shutdown status=%d, body=%s", w.Code, w.Body.String())
	}
	if st.shutdownCalls != 1 {
		t.Fatalf("expected Shutdown to be called once, got %d", st.shutdownCalls)
	}
}

func TestStoveHandlers_MissingBody(t *testing.T) {
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Monitoring:    &mockMonitoring{},
		Stove:         &mockStove{},
	}
	r := newTestRouter(s)

	for _, target := range []string{"/api/v1/stove/ignite", "/api/v1/stove/power", "/api/v1/stove/fan"} {
		w := doAuthed(r, http.MethodPost, target, "valid", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 for empty body, got %d", target, w.Code)
		}
	}
}

func TestStoveHandlers_InvalidLevel(t *testing.T) {
	st := &mockStove{igniteErr: service.ErrInvalidLevel}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Monitoring:    &mockMonitoring{},
		Stove:         st,
	}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodPost, "/api/v1/stove/ignite", "valid", `{"power":9}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid level, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestStoveHandlers_GatewayFailure(t *testing.T) {
	st := &mockStove{shutdownErr: errors.New("stove unreachable")}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Monitoring:    &mockMonitoring{},
		Stove:         st,
	}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodPost, "/api/v1/stove/shutdown", "valid", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for gateway failure, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestStoveHandlers_BookkeepingFailureStillSucceeds(t *testing.T) {
	st := &mockStove{powerErr: &service.PostCommandError{Err: errors.New("db: disk full")}}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Monitoring:    &mockMonitoring{state: models.StoveState{ID: 1, Burning: true}},
		Stove:         st,
	}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodPost, "/api/v1/stove/power", "valid", `{"level":3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 when only bookkeeping failed, got %d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Status  string `json:"status"`
		Warning string `json:"warning"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusPowerSet {
		t.Fatalf("expected status %q, got %q", statusPowerSet, resp.Status)
	}
	if resp.Warning != warnBookkeeping {
		t.Fatalf("expected warning %q, got %q", warnBookkeeping, resp.Warning)
	}
}

func TestHealth_NoAuthRequired(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := doAuthed(r, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}

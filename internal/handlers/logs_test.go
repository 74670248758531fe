package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"pellet_panel/internal/models"
	"pellet_panel/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	auth := &mockAuth{parseID: 99}
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.StoveEvent{
		{EventID: "e1", OccurredAt: now, Type: models.EventIgnite, Description: "ignite"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), Type: models.EventModeChange, Description: "mode"},
	}
	logs := &mockEventLog{resp: events}
	s := &service.Service{
		Authorization: auth,
		EventLog:      logs,
	}
	r := newTestRouter(s)

	// Invalid 'from' -> 400
	w := doAuthed(r, http.MethodGet, "/api/v1/logs/?from=notatime", "valid", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	// Inverted range -> 400
	w = doAuthed(r, http.MethodGet, "/api/v1/logs/?from=2025-09-02&to=2025-09-01", "valid", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 inverted range, got %d", w.Code)
	}

	// Valid range and type (lowercase type should be normalized to upper in service call)
	q := "/api/v1/logs/?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=mode_change"
	w = doAuthed(r, http.MethodGet, q, "valid", "")
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                 `json:"count"`
		Events []models.StoveEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastType != models.EventModeChange {
		t.Fatalf("expected lastType MODE_CHANGE, got %q", logs.lastType)
	}
}

func TestLogsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	logs := &mockEventLog{}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		EventLog:      logs,
	}
	r := newTestRouter(s)

	w := doAuthed(r, http.MethodGet, "/api/v1/logs/?to=2025-08-31", "valid", "")
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	wantDay := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	if !logs.lastTo.After(wantDay.Add(23 * time.Hour)) {
		t.Fatalf("date-only 'to' should extend to end of day, got %v", logs.lastTo)
	}
	if !logs.lastTo.Before(wantDay.Add(24 * time.Hour)) {
		t.Fatalf("'to' leaked into the next day: %v", logs.lastTo)
	}
}

package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"pellet_panel/internal/models"
	"pellet_panel/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockStove struct {
	igniteErr   error
	powerErr    error
	fanErr      error
	shutdownErr error

	igniteCalls   int
	powerCalls    int
	fanCalls      int
	shutdownCalls int

	lastPower  int
	lastLevel  int
	lastSource models.CommandSource
}

func (m *mockStove) Ignite(ctx context.Context, power int, source models.CommandSource) error {
	m.igniteCalls++
	m.lastPower = power
	m.lastSource = source
	return m.igniteErr
}
func (m *mockStove) SetPower(ctx context.Context, level int, source models.CommandSource) error {
	m.powerCalls++
	m.lastLevel = level
	m.lastSource = source
	return m.powerErr
}
func (m *mockStove) SetFan(ctx context.Context, level int, source models.CommandSource) error {
	m.fanCalls++
	m.lastLevel = level
	m.lastSource = source
	return m.fanErr
}
func (m *mockStove) Shutdown(ctx context.Context, source models.CommandSource) error {
	m.shutdownCalls++
	m.lastSource = source
	return m.shutdownErr
}

type mockMonitoring struct {
	state models.StoveState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.StoveState, error) {
	return m.state, m.err
}

type mockSchedulerMode struct {
	mode models.SchedulerMode

	getErr     error
	setErr     error
	clearErr   error
	onManual   int
	setCalls   int
	clearCalls int

	lastEnabled bool
	lastSource  models.CommandSource
}

func (m *mockSchedulerMode) GetMode(ctx context.Context) (models.SchedulerMode, error) {
	return m.mode, m.getErr
}
func (m *mockSchedulerMode) SetEnabled(ctx context.Context, enabled bool) error {
	m.setCalls++
	m.lastEnabled = enabled
	if m.setErr == nil {
		m.mode.Enabled = enabled
		m.mode.SemiManual = false
	}
	return m.setErr
}
func (m *mockSchedulerMode) ClearSemiManual(ctx context.Context) error {
	m.clearCalls++
	if m.clearErr == nil {
		m.mode.SemiManual = false
		m.mode.ReturnToAutoAt = nil
	}
	return m.clearErr
}
func (m *mockSchedulerMode) OnManualCommand(ctx context.Context, source models.CommandSource) error {
	m.onManual++
	m.lastSource = source
	return nil
}

type mockSchedule struct {
	ws     models.WeeklySchedule
	getErr error
	putErr error

	putCalls int
	lastPut  models.WeeklySchedule
}

func (m *mockSchedule) Get(ctx context.Context) (models.WeeklySchedule, error) {
	return m.ws, m.getErr
}
func (m *mockSchedule) Put(ctx context.Context, ws models.WeeklySchedule) error {
	m.putCalls++
	m.lastPut = ws
	return m.putErr
}

type mockEventLog struct {
	resp     []models.StoveEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.StoveEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// doAuthed runs a request through the router with an optional JSON body and
// a Bearer token, returning the recorder.
func doAuthed(r *gin.Engine, method, target, token, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

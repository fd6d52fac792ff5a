package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/episim/internal/config"
	"github.com/katalvlaran/episim/internal/logging"
	"github.com/katalvlaran/episim/internal/session"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.Network.Nodes = 100
	cfg.Network.Attachment = 2
	cfg.Network.MaxNodes = 500
	cfg.Network.MaxEdges = 5000
	cfg.Server.MaxSessions = 3
	cfg.Simulation.Seed = 11

	reg := session.NewRegistry(cfg, logging.Nop())
	s := NewServer(cfg, reg, logging.Nop())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return s, ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}

	return resp.StatusCode, out
}

func createSession(t *testing.T, ts *httptest.Server, body string) string {
	t.Helper()
	code, out := do(t, ts, http.MethodPost, "/api/sessions", body)
	require.Equal(t, http.StatusCreated, code, out)

	return out["session_id"].(string)
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)
	code, out := do(t, ts, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", out["status"])
}

func TestInitialize(t *testing.T) {
	_, ts := newTestServer(t)

	code, out := do(t, ts, http.MethodPost, "/api/sessions", `{"n_nodes": 30, "m_edges": 3}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "success", out["status"])
	assert.NotEmpty(t, out["session_id"])
	stats := out["stats"].(map[string]any)
	assert.EqualValues(t, 30, stats["total_nodes"])
	assert.EqualValues(t, 81, stats["total_edges"])
	graph := out["graph"].(map[string]any)
	assert.Len(t, graph["nodes"], 30)
	assert.Len(t, graph["links"], 81)

	code, _ = do(t, ts, http.MethodPost, "/api/sessions", "")
	assert.Equal(t, http.StatusCreated, code, "empty body takes defaults")
}

func TestInitialize_Errors(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"attachment too large", `{"n_nodes": 5, "m_edges": 5}`, http.StatusBadRequest},
		{"zero nodes", `{"n_nodes": 0}`, http.StatusBadRequest},
		{"above max nodes", `{"n_nodes": 100000}`, http.StatusBadRequest},
		{"above max edges", `{"n_nodes": 500, "m_edges": 250}`, http.StatusBadRequest},
		{"malformed json", `{"n_nodes": `, http.StatusBadRequest},
		{"wrong type", `{"n_nodes": "ten"}`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, out := do(t, ts, http.MethodPost, "/api/sessions", tc.body)
			assert.Equal(t, tc.want, code)
			assert.Equal(t, "error", out["status"])
			assert.NotEmpty(t, out["message"])
		})
	}
}

func TestInitialize_EdgeLimitMessage(t *testing.T) {
	_, ts := newTestServer(t)

	code, out := do(t, ts, http.MethodPost, "/api/sessions", `{"n_nodes": 500, "m_edges": 250}`)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, out["message"], "62500 edges")
	assert.Contains(t, out["message"], "network too large")

	code, out = do(t, ts, http.MethodGet, "/api/sessions", "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, out["sessions"])
}

func TestTooManySessions(t *testing.T) {
	_, ts := newTestServer(t)
	for i := 0; i < 3; i++ {
		createSession(t, ts, `{"n_nodes": 10}`)
	}
	code, _ := do(t, ts, http.MethodPost, "/api/sessions", `{"n_nodes": 10}`)
	assert.Equal(t, http.StatusTooManyRequests, code)
}

func TestSimulationFlow(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts, `{"n_nodes": 50}`)
	base := "/api/sessions/" + id

	code, out := do(t, ts, http.MethodGet, base+"/state", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "no_simulation", out["status"])
	assert.Equal(t, "No active simulation", out["message"])

	code, out = do(t, ts, http.MethodPost, base+"/step", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error", out["status"])

	code, out = do(t, ts, http.MethodPost, base+"/start", `{"infection_probability": 0.5, "initial_nodes": [0, 1]}`)
	require.Equal(t, http.StatusOK, code, out)
	stats := out["statistics"].(map[string]any)
	assert.EqualValues(t, 2, stats["infected_count"])
	assert.EqualValues(t, 50, stats["total_nodes"])
	infection := out["infection_state"].(map[string]any)
	assert.Len(t, infection, 50)
	assert.Equal(t, true, infection["0"].(map[string]any)["infected"])

	code, out = do(t, ts, http.MethodPost, base+"/step", "")
	require.Equal(t, http.StatusOK, code)
	step := out["step_result"].(map[string]any)
	assert.EqualValues(t, 1, step["time_step"])
	assert.Contains(t, step, "newly_infected")
	assert.Contains(t, step, "is_outbreak_over")

	code, out = do(t, ts, http.MethodPost, base+"/infect", `{"node_id": 49}`)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, out, "infected")

	code, _ = do(t, ts, http.MethodPost, base+"/infect", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, out = do(t, ts, http.MethodPost, base+"/run", `{"max_steps": 3}`)
	require.Equal(t, http.StatusOK, code)
	assert.LessOrEqual(t, len(out["steps"].([]any)), 3)

	code, out = do(t, ts, http.MethodGet, base+"/degrees", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out["components"])
	assert.Contains(t, out, "histogram")

	code, out = do(t, ts, http.MethodPost, base+"/reset", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Simulation reset", out["message"])

	code, out = do(t, ts, http.MethodGet, base+"/state", "")
	require.Equal(t, http.StatusOK, code)
	stats = out["statistics"].(map[string]any)
	assert.EqualValues(t, 0, stats["time_step"])
	assert.EqualValues(t, 0, stats["infected_count"])
}

func TestStart_InvalidProbability(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts, `{"n_nodes": 20}`)

	code, out := do(t, ts, http.MethodPost, "/api/sessions/"+id+"/start", `{"infection_probability": 2}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, out["message"], "probability")
}

func TestUnknownSession(t *testing.T) {
	_, ts := newTestServer(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/sessions/missing/start"},
		{http.MethodPost, "/api/sessions/missing/step"},
		{http.MethodGet, "/api/sessions/missing/state"},
		{http.MethodGet, "/api/sessions/missing/degrees"},
		{http.MethodDelete, "/api/sessions/missing"},
	} {
		code, out := do(t, ts, tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, code, tc.path)
		assert.Equal(t, "error", out["status"])
	}
}

func TestListAndDelete(t *testing.T) {
	_, ts := newTestServer(t)
	a := createSession(t, ts, `{"n_nodes": 10}`)
	b := createSession(t, ts, `{"n_nodes": 12}`)

	code, out := do(t, ts, http.MethodGet, "/api/sessions", "")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, out["sessions"], 2)

	code, _ = do(t, ts, http.MethodDelete, "/api/sessions/"+a, "")
	require.Equal(t, http.StatusOK, code)

	_, out = do(t, ts, http.MethodGet, "/api/sessions", "")
	sessions := out["sessions"].([]any)
	require.Len(t, sessions, 1)
	assert.Equal(t, b, sessions[0].(map[string]any)["id"])
}

func TestMethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t)
	code, _ := do(t, ts, http.MethodGet, "/api/sessions/abc/step", "")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, ts, http.MethodGet, "/healthz", "")

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `episim_http_requests_total{method="GET",path="GET /healthz",status="200"}`)
}

func TestRecoveryMiddleware(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.RecoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"internal server error"}`, rec.Body.String())
}

func TestServe_GracefulShutdown(t *testing.T) {
	s, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := fmt.Sprintf("http://%s/healthz", ln.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Post(url, "application/json", bytes.NewReader(nil))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusMethodNotAllowed
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

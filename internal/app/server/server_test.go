package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sid16p/Task-7---Fetch-API/internal/app/config"
	"github.com/Sid16p/Task-7---Fetch-API/internal/panel"
	"github.com/Sid16p/Task-7---Fetch-API/internal/users"
)

const threeUsers = `[
  {"id": 1, "name": "Leanne Graham", "username": "Bret", "email": "Sincere@april.biz",
   "address": {"street": "Kulas Light", "suite": "Apt. 556", "city": "Gwenborough", "zipcode": "92998-3874"},
   "phone": "1-770-736-8031 x56442", "website": "hildegard.org", "company": {"name": "Romaguera-Crona"}},
  {"id": 2, "name": "Ervin Howell", "username": "Antonette", "email": "Shanna@melissa.tv",
   "address": {"street": "Victor Plains", "suite": "Suite 879", "city": "Wisokyburgh", "zipcode": "90566-7771"},
   "phone": "010-692-6593 x09125", "website": "anastasia.net", "company": {"name": "Deckow-Crist"}},
  {"id": 3, "name": "<script>alert(1)</script>", "username": "Samantha", "email": "Nathan@yesenia.net",
   "address": {"street": "Douglas Extension", "suite": "Suite 847", "city": "McKenziehaven", "zipcode": "59590-4157"},
   "phone": "1-463-123-4447", "website": "ramiro.info", "company": {"name": "Romaguera-Jacobson"}}
]`

type upstream struct {
	hits atomic.Int32
}

// newUpstream fakes the user API. When gate is non-nil every request blocks
// until it is closed.
func newUpstream(t *testing.T, status int, body string, gate chan struct{}) (*httptest.Server, *upstream) {
	t.Helper()
	u := &upstream{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		if gate != nil {
			<-gate
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, u
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App:     config.AppConfig{Host: "127.0.0.1", Port: 0},
		Panel:   config.PanelConfig{Title: "User Directory", StaggerMS: 100},
		Routing: config.RoutingConfig{PublicDir: t.TempDir()},
		Reload:  config.ReloadConfig{Limit: 0, WindowSeconds: 60},
	}
}

func newTestServer(t *testing.T, upstreamURL string) *Server {
	t.Helper()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s := New(testConfig(t), users.NewClient(upstreamURL), "test")
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestReload_Success(t *testing.T) {
	up, _ := newUpstream(t, http.StatusOK, threeUsers, nil)
	s := newTestServer(t, up.URL)

	rec := do(t, s, http.MethodPost, ReloadPath)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, 3, strings.Count(body, `class="user-card`))
	assert.Contains(t, body, `<span id="userCount" class="font-bold">3</span>`)
	assert.Contains(t, body, "Leanne Graham")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.NotContains(t, body, "disabled")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	state := s.Panel().State()
	assert.False(t, state.Loading)
	assert.Len(t, state.Records, 3)
}

func TestReload_NotFound(t *testing.T) {
	up, _ := newUpstream(t, http.StatusNotFound, `{}`, nil)
	s := newTestServer(t, up.URL)

	rec := do(t, s, http.MethodPost, ReloadPath)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "HTTP Error: 404 - Not Found")
	assert.NotContains(t, body, `class="user-card`)
	assert.Contains(t, body, `id="statsContainer" class="mb-6 p-4 bg-green-50 border border-green-200 rounded-lg text-green-800 hidden"`)
	assert.False(t, s.Panel().Loading())
}

func TestReload_EmptyArray(t *testing.T) {
	up, _ := newUpstream(t, http.StatusOK, `[]`, nil)
	s := newTestServer(t, up.URL)

	body := do(t, s, http.MethodPost, ReloadPath).Body.String()
	assert.Contains(t, body, "No user data received from API")
	assert.NotContains(t, body, `class="user-card`)

	state := s.Panel().State()
	assert.Equal(t, "No user data received from API", state.LastError)
	assert.Empty(t, state.Records)
}

func TestReload_IgnoredWhileLoading(t *testing.T) {
	gate := make(chan struct{})
	up, u := newUpstream(t, http.StatusOK, threeUsers, gate)
	s := newTestServer(t, up.URL)

	first := make(chan *httptest.ResponseRecorder)
	go func() { first <- do(t, s, http.MethodPost, ReloadPath) }()

	require.Eventually(t, func() bool { return u.hits.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	require.True(t, s.Panel().Loading())

	rec := do(t, s, http.MethodPost, ReloadPath)
	assert.Equal(t, "true", rec.Header().Get("X-Fetch-Ignored"))
	assert.Contains(t, rec.Body.String(), "⏳ Loading...")
	assert.Contains(t, rec.Body.String(), "disabled")

	close(gate)
	done := <-first
	assert.Empty(t, done.Header().Get("X-Fetch-Ignored"))
	assert.Equal(t, int32(1), u.hits.Load())
	assert.False(t, s.Panel().Loading())
}

func TestPage(t *testing.T) {
	up, _ := newUpstream(t, http.StatusOK, threeUsers, nil)
	s := newTestServer(t, up.URL)
	s.Panel().FetchAll(t.Context())

	rec := do(t, s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<title>User Directory</title>")
	assert.Contains(t, body, LivePath)
	assert.Contains(t, body, "Ervin Howell")
}

func TestUsersAPI(t *testing.T) {
	up, _ := newUpstream(t, http.StatusOK, threeUsers, nil)
	s := newTestServer(t, up.URL)

	rec := do(t, s, http.MethodGet, "/api/users")
	var empty panel.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.NotNil(t, empty.Records)
	assert.Empty(t, empty.Records)

	s.Panel().FetchAll(t.Context())

	rec = do(t, s, http.MethodGet, "/api/users")
	require.Equal(t, http.StatusOK, rec.Code)

	var state panel.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Len(t, state.Records, 3)
	assert.Equal(t, "Bret", state.Records[0].Username)
	assert.False(t, state.Loading)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:1")

	rec := do(t, s, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var health map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "test", health["version"])
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:1")
	rec := do(t, s, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReload_RateLimited(t *testing.T) {
	up, _ := newUpstream(t, http.StatusOK, threeUsers, nil)
	cfg := testConfig(t)
	cfg.Reload.Limit = 1
	s := New(cfg, users.NewClient(up.URL), "test")
	t.Cleanup(s.Close)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodPost, ReloadPath).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, s, http.MethodPost, ReloadPath).Code)
}

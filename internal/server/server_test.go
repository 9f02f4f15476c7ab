package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/app"
	"github.com/SandeepBatta/OrigamiAI/internal/config"
	"github.com/SandeepBatta/OrigamiAI/internal/continuity"
	"github.com/SandeepBatta/OrigamiAI/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeProvider struct {
	mu     sync.Mutex
	textFn func(continuity.TextRequest) (continuity.TextResponse, error)
}

func (f *fakeProvider) setText(fn func(continuity.TextRequest) (continuity.TextResponse, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.textFn = fn
}

func (f *fakeProvider) GenerateText(_ context.Context, req continuity.TextRequest) (continuity.TextResponse, error) {
	f.mu.Lock()
	fn := f.textFn
	f.mu.Unlock()
	if fn != nil {
		return fn(req)
	}
	return continuity.TextResponse{Text: "echo: " + req.Prompt, Token: "resp"}, nil
}

func (f *fakeProvider) GenerateImage(context.Context, string) (continuity.ImageResponse, error) {
	return continuity.ImageResponse{Locator: "img/123.png", RevisedPrompt: "a fluffy cat"}, nil
}

func newTestServer(t *testing.T, opts ...app.Option) *Server {
	t.Helper()
	conn, err := db.Connect(t.Context(), t.TempDir())
	require.NoError(t, err)
	cfg := &config.Config{
		Options:  &config.Options{AdminUsers: []string{"admin"}},
		Provider: &config.ProviderOptions{Timeout: 5},
		Images:   &config.ImageOptions{Directory: filepath.Join(t.TempDir(), "images")},
		Server:   &config.ServerOptions{},
	}
	a, err := app.New(t.Context(), conn, cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)
	return New(a)
}

func do(t *testing.T, s *Server, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequestWithContext(t.Context(), method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(HeaderUserID, user)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestIdentityHeaders(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/sessions", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), HeaderUserID)

	req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/api/sessions", nil)
	req.Header.Set(HeaderUserID, "alice")
	req.Header.Set(HeaderTimezone, "Nowhere/Land")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatFlow(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, app.WithProvider(&fakeProvider{}))

	rec := do(t, s, http.MethodPost, "/api/sessions", "alice", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID := gjson.Get(rec.Body.String(), "session_id").String()
	require.Len(t, sessionID, 32)

	rec = do(t, s, http.MethodPost, "/api/sessions/"+sessionID+"/turns", "alice",
		submitRequest{Prompt: "hello there, how are you doing today?"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := gjson.Parse(rec.Body.String())
	require.Equal(t, "user", body.Get("user.role").String())
	require.Equal(t, "echo: hello there, how are you doing today?", body.Get("assistant.content").String())

	rec = do(t, s, http.MethodGet, "/api/sessions/"+sessionID+"/turns", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, gjson.Get(rec.Body.String(), "turns").Array(), 2)

	rec = do(t, s, http.MethodGet, "/api/sessions/"+sessionID+"/turns", "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, gjson.Get(rec.Body.String(), "turns").Array())

	rec = do(t, s, http.MethodGet, "/api/sessions", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	groups := gjson.Get(rec.Body.String(), "groups").Array()
	require.Len(t, groups, 1)
	require.Equal(t, "Today", groups[0].Get("bucket").String())
	require.Equal(t, "hello there, how are...", groups[0].Get("sessions.0.snippet").String())

	rec = do(t, s, http.MethodGet, "/api/sessions?detailed=true", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 2, gjson.Get(rec.Body.String(), "sessions.0.turn_count").Int())

	rec = do(t, s, http.MethodGet, "/api/stats", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 2, gjson.Get(rec.Body.String(), "totals.messages").Int())

	rec = do(t, s, http.MethodGet, "/api/export", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice", gjson.Get(rec.Body.String(), "user_id").String())
	require.Len(t, gjson.Get(rec.Body.String(), "turns").Array(), 2)
}

func TestViewingSessionKeepsActiveThread(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{}
	var mu sync.Mutex
	var tokens []string
	p.setText(func(req continuity.TextRequest) (continuity.TextResponse, error) {
		mu.Lock()
		defer mu.Unlock()
		tokens = append(tokens, req.Token)
		return continuity.TextResponse{Text: "ok", Token: "resp_" + req.Prompt}, nil
	})
	s := newTestServer(t, app.WithProvider(p))

	sessionID := gjson.Get(do(t, s, http.MethodPost, "/api/sessions", "alice", nil).Body.String(), "session_id").String()
	rec := do(t, s, http.MethodPost, "/api/sessions/"+sessionID+"/turns", "alice", submitRequest{Prompt: "1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// 查看另一个会话不会重置活动会话的令牌
	rec = do(t, s, http.MethodGet, "/api/sessions/other/turns", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodPost, "/api/sessions/"+sessionID+"/turns", "alice", submitRequest{Prompt: "2"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// 重复激活当前会话保留令牌，激活其他会话才重置
	rec = do(t, s, http.MethodPost, "/api/sessions/"+sessionID+"/activate", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, sessionID, gjson.Get(rec.Body.String(), "session_id").String())
	rec = do(t, s, http.MethodPost, "/api/sessions/"+sessionID+"/turns", "alice", submitRequest{Prompt: "3"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/api/sessions/other/activate", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodPost, "/api/sessions/other/turns", "alice", submitRequest{Prompt: "4"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"", "resp_1", "resp_2", ""}, tokens)
}

func TestSubmitImage(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{}
	p.setText(func(continuity.TextRequest) (continuity.TextResponse, error) {
		return continuity.TextResponse{Text: `{"action":"generate_image","prompt":"a cat"}`, Token: "r"}, nil
	})
	s := newTestServer(t, app.WithProvider(p))

	rec := do(t, s, http.MethodPost, "/api/sessions/s1/turns", "alice", submitRequest{Prompt: "draw"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := gjson.Parse(rec.Body.String())
	require.Equal(t, "image", body.Get("assistant.kind").String())
	require.Equal(t, "img/123.png", body.Get("assistant.url").String())
	require.Equal(t, "a fluffy cat", body.Get("assistant.content").String())
}

func TestSubmitErrors(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{}
	s := newTestServer(t, app.WithProvider(p))
	path := "/api/sessions/s1/turns"

	rec := do(t, s, http.MethodPost, path, "alice", submitRequest{Prompt: "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, gjson.Get(rec.Body.String(), "retryable").Bool())

	p.setText(func(continuity.TextRequest) (continuity.TextResponse, error) {
		return continuity.TextResponse{}, errors.New("rate limited")
	})
	rec = do(t, s, http.MethodPost, path, "alice", submitRequest{Prompt: "hi"})
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.True(t, gjson.Get(rec.Body.String(), "retryable").Bool())

	p.setText(func(continuity.TextRequest) (continuity.TextResponse, error) {
		return continuity.TextResponse{}, context.DeadlineExceeded
	})
	rec = do(t, s, http.MethodPost, path, "alice", submitRequest{Prompt: "hi"})
	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
	require.True(t, gjson.Get(rec.Body.String(), "retryable").Bool())

	rec = do(t, s, http.MethodGet, path, "alice", nil)
	require.Empty(t, gjson.Get(rec.Body.String(), "turns").Array(), "失败的提交不应写入记录")

	req := httptest.NewRequestWithContext(t.Context(), http.MethodPost, path, strings.NewReader("{"))
	req.Header.Set(HeaderUserID, "alice")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitNotConfigured(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/sessions/s1/turns", "alice", submitRequest{Prompt: "hi"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminUsers(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, app.WithProvider(&fakeProvider{}))
	rec := do(t, s, http.MethodPost, "/api/sessions/s1/turns", "alice", submitRequest{Prompt: "hi"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/admin/users", "alice", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/admin/users", "admin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := gjson.Get(rec.Body.String(), "users").Array()
	require.Len(t, users, 1)
	require.Equal(t, "alice", users[0].Get("user_id").String())
}

func TestEventsStream(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, app.WithProvider(&fakeProvider{}))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderUserID, "alice")
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	rec := do(t, s, http.MethodPost, "/api/sessions/s1/turns", "alice", submitRequest{Prompt: "hi"})
	require.Equal(t, http.StatusCreated, rec.Code)

	scanner := bufio.NewScanner(resp.Body)
	var events int
	for scanner.Scan() && events < 2 {
		if strings.HasPrefix(scanner.Text(), "event:turn") {
			events++
		}
	}
	require.Equal(t, 2, events)
}

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myblog-dev/myblog/internal/config"
	"github.com/myblog-dev/myblog/internal/notify"
	"github.com/myblog-dev/myblog/internal/request"
	"github.com/myblog-dev/myblog/internal/router"
	"github.com/myblog-dev/myblog/internal/server"
	"github.com/myblog-dev/myblog/internal/session"
)

type harness struct {
	api      *Client
	store    *session.MemoryStore
	nav      *router.Navigator
	notices  *notify.Recorder
	url      string
	tokenTTL time.Duration
}

// newHarness runs the real API server and wires the client stack against it
func newHarness(t *testing.T, ttl time.Duration) *harness {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{URL: filepath.Join(t.TempDir(), "api.sqlite")},
		Auth:     config.AuthConfig{JWTSecret: "api-test-secret", TokenTTL: ttl},
		HTTP:     config.HTTPConfig{CORSOrigins: []string{"http://localhost:5173"}},
	}
	srv, err := server.New(cfg, zerolog.Nop(), "test")
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	store := session.NewMemoryStore("")
	nav := router.NewNavigator(router.DefaultTable(), store)
	rec := &notify.Recorder{}

	pipeline := request.New(
		request.Config{BaseURL: ts.URL, Timeout: 5 * time.Second},
		store,
		request.WithNotifier(rec),
		request.WithUnauthorizedHandler(func() { _, _ = nav.ForceLogin() }),
	)

	return &harness{
		api:      New(pipeline, store),
		store:    store,
		nav:      nav,
		notices:  rec,
		url:      ts.URL,
		tokenTTL: ttl,
	}
}

func (h *harness) register(t *testing.T, username string) {
	t.Helper()
	_, err := h.api.Register(context.Background(), RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
}

func TestLogin_PersistsSessionAndOpensHome(t *testing.T) {
	h := newHarness(t, time.Hour)
	ctx := context.Background()
	h.register(t, "alice")

	loc, err := h.nav.Start("/")
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)

	resp, err := h.api.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.True(t, session.Authenticated(h.store))

	loc, err = h.nav.Push("/")
	require.NoError(t, err)
	assert.Equal(t, "/", loc.Path)

	me, err := h.api.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)

	user, err := h.api.Validate(ctx)
	require.NoError(t, err)
	assert.Equal(t, me.ID, user.ID)
	assert.Empty(t, h.notices.Messages())
}

func TestLogin_BadCredentialsNotifiesServerMessage(t *testing.T) {
	h := newHarness(t, time.Hour)
	h.register(t, "alice")

	_, err := h.api.Login(context.Background(), "alice", "nope")

	var apiErr *request.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"Invalid username or password"}, h.notices.Messages())
	assert.False(t, session.Authenticated(h.store))
}

func TestExpiredSession_ClearsTokenAndForcesLogin(t *testing.T) {
	h := newHarness(t, time.Second)
	ctx := context.Background()
	h.register(t, "alice")

	_, err := h.api.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	_, err = h.nav.Start("/")
	require.NoError(t, err)

	// JWT expiry has one-second resolution
	time.Sleep(2100 * time.Millisecond)

	_, err = h.api.Me(ctx)

	var statusErr *request.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.False(t, session.Authenticated(h.store))

	loc, _ := h.nav.Current()
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, []string{"Session expired, please log in again"}, h.notices.Messages())
}

func TestArticles_RoundTrip(t *testing.T) {
	h := newHarness(t, time.Hour)
	ctx := context.Background()
	h.register(t, "alice")
	_, err := h.api.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	created, err := h.api.CreateArticle(ctx, CreateArticleRequest{
		Title:     "Hello",
		Summary:   "greeting",
		Content:   "First post",
		Published: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Author)

	page, err := h.api.ListArticles(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Pagination.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Hello", page.Data[0].Title)

	got, err := h.api.GetArticle(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "First post", got.Content)

	require.NoError(t, h.api.DeleteArticle(ctx, created.ID))

	_, err = h.api.GetArticle(ctx, created.ID)
	var statusErr *request.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, []string{"The requested resource does not exist"}, h.notices.Messages())
}

func TestHealth_PassesThroughRawBody(t *testing.T) {
	h := newHarness(t, time.Hour)

	doc, err := h.api.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "online", doc["status"])
	assert.Equal(t, "myblog-api", doc["service"])
}

func TestLogout_ClearsSession(t *testing.T) {
	h := newHarness(t, time.Hour)
	ctx := context.Background()
	h.register(t, "alice")
	_, err := h.api.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	require.NoError(t, h.api.Logout(ctx))
	assert.False(t, session.Authenticated(h.store))

	loc, err := h.nav.Push("/login")
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
}

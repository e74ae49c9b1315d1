package router

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myblog-dev/myblog/internal/session"
)

func TestNavigator_RequiresAuthRedirectsToLogin(t *testing.T) {
	nav := NewNavigator(DefaultTable(), session.NewMemoryStore(""))

	loc, err := nav.Start("/")
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, "login", loc.Name)
}

func TestNavigator_GuestOnlyRedirectsHome(t *testing.T) {
	nav := NewNavigator(DefaultTable(), session.NewMemoryStore("jwt"))

	for _, p := range []string{"/login", "/register"} {
		loc, err := nav.Push(p)
		require.NoError(t, err)
		assert.Equal(t, "/", loc.Path, p)
	}
}

func TestNavigator_AllowsOtherCombinations(t *testing.T) {
	tests := []struct {
		token string
		path  string
	}{
		{"", "/login"},
		{"", "/register"},
		{"", "/about"},
		{"", "/test"},
		{"jwt", "/"},
		{"jwt", "/about"},
		{"jwt", "/test"},
	}

	for _, tt := range tests {
		nav := NewNavigator(DefaultTable(), session.NewMemoryStore(tt.token))
		loc, err := nav.Push(tt.path + "?ref=nav")
		require.NoError(t, err)
		assert.Equal(t, tt.path, loc.Path)
		assert.Equal(t, "ref=nav", loc.Query)
	}
}

func TestNavigator_ReadsSessionAtTransitionTime(t *testing.T) {
	store := session.NewMemoryStore("")
	nav := NewNavigator(DefaultTable(), store)

	loc, err := nav.Push("/")
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)

	require.NoError(t, store.SetToken("jwt"))

	loc, err = nav.Push("/")
	require.NoError(t, err)
	assert.Equal(t, "/", loc.Path)
}

func TestNavigator_GuardDoesNotMutateSession(t *testing.T) {
	store := session.NewMemoryStore("jwt")
	nav := NewNavigator(DefaultTable(), store)

	_, err := nav.Push("/login")
	require.NoError(t, err)

	token, _ := store.Token()
	assert.Equal(t, "jwt", token)
}

func TestNavigator_BackAndForwardAreGuarded(t *testing.T) {
	store := session.NewMemoryStore("jwt")
	nav := NewNavigator(DefaultTable(), store)

	_, err := nav.Start("/")
	require.NoError(t, err)
	_, err = nav.Push("/about")
	require.NoError(t, err)

	// Session ends while on /about; going back to / must hit the guard
	require.NoError(t, store.ClearToken())

	loc, err := nav.Back()
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)

	loc, err = nav.Forward()
	require.NoError(t, err)
	assert.Equal(t, "/about", loc.Path)

	_, err = nav.Forward()
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestNavigator_BackWithoutHistory(t *testing.T) {
	nav := NewNavigator(DefaultTable(), session.NewMemoryStore(""))

	_, err := nav.Back()
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestNavigator_ReplaceKeepsHistory(t *testing.T) {
	nav := NewNavigator(DefaultTable(), session.NewMemoryStore(""))

	_, err := nav.Start("/about")
	require.NoError(t, err)
	_, err = nav.Replace("/test")
	require.NoError(t, err)

	_, err = nav.Back()
	assert.ErrorIs(t, err, ErrNoHistory)

	loc, ok := nav.Current()
	require.True(t, ok)
	assert.Equal(t, "/test", loc.Path)
}

func TestNavigator_PushNamed(t *testing.T) {
	nav := NewNavigator(DefaultTable(), session.NewMemoryStore(""))

	loc, err := nav.PushNamed("about")
	require.NoError(t, err)
	assert.Equal(t, "/about", loc.Path)

	_, err = nav.PushNamed("missing")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestNavigator_UnknownPathLeavesLocation(t *testing.T) {
	nav := NewNavigator(DefaultTable(), session.NewMemoryStore(""))

	_, err := nav.Start("/about")
	require.NoError(t, err)

	_, err = nav.Push("/does-not-exist")
	assert.ErrorIs(t, err, ErrRouteNotFound)

	loc, _ := nav.Current()
	assert.Equal(t, "/about", loc.Path)
}

func TestNavigator_RedirectLoop(t *testing.T) {
	nav := NewNavigator(
		DefaultTable(),
		session.NewMemoryStore(""),
		WithGuard(Guard{LoginPath: "/", HomePath: "/"}),
	)

	_, err := nav.Push("/")
	assert.ErrorIs(t, err, ErrRedirectLoop)

	_, ok := nav.Current()
	assert.False(t, ok)
}

func TestNavigator_Hooks(t *testing.T) {
	var seen []Transition
	nav := NewNavigator(
		DefaultTable(),
		session.NewMemoryStore(""),
		WithHook(func(tr Transition) { seen = append(seen, tr) }),
	)

	_, err := nav.Start("/about")
	require.NoError(t, err)
	_, err = nav.Push("/")
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Nil(t, seen[0].From)
	assert.False(t, seen[0].Redirected)
	assert.Equal(t, "/about", seen[1].From.Path)
	assert.Equal(t, "/", seen[1].Requested)
	assert.Equal(t, "/login", seen[1].To.Path)
	assert.True(t, seen[1].Redirected)
}

func TestNavigator_ForceLoginOnce(t *testing.T) {
	var mu sync.Mutex
	commits := 0

	nav := NewNavigator(
		DefaultTable(),
		session.NewMemoryStore(""),
		WithHook(func(tr Transition) {
			if tr.To.Path == "/login" {
				mu.Lock()
				commits++
				mu.Unlock()
			}
		}),
	)
	_, err := nav.Start("/about")
	require.NoError(t, err)

	var wg sync.WaitGroup
	var redirectsMu sync.Mutex
	redirects := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			moved, err := nav.ForceLogin()
			assert.NoError(t, err)
			if moved {
				redirectsMu.Lock()
				redirects++
				redirectsMu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, redirects)
	assert.Equal(t, 1, commits)

	loc, _ := nav.Current()
	assert.Equal(t, "/login", loc.Path)
}

func TestNavigator_DoubleSlashIsNotAHost(t *testing.T) {
	nav := NewNavigator(DefaultTable(), session.NewMemoryStore("jwt"))

	loc, err := nav.Push("//about?tab=team")
	require.NoError(t, err)
	assert.Equal(t, "/about", loc.Path)
	assert.Equal(t, "tab=team", loc.Query)

	_, err = nav.Push("//nowhere")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestNavigator_ForceLoginIgnoresLeftoverToken(t *testing.T) {
	// A token the server rejected may still be stored if clearing it failed
	nav := NewNavigator(DefaultTable(), session.NewMemoryStore("rejected"))
	_, err := nav.Start("/about")
	require.NoError(t, err)

	moved, err := nav.ForceLogin()
	require.NoError(t, err)
	assert.True(t, moved)

	loc, _ := nav.Current()
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, "login", loc.Name)
}

func TestNavigator_ForceLoginAlreadyThere(t *testing.T) {
	nav := NewNavigator(DefaultTable(), session.NewMemoryStore(""))
	_, err := nav.Start("/login")
	require.NoError(t, err)

	moved, err := nav.ForceLogin()
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestNavigator_SnapshotRestore(t *testing.T) {
	store := session.NewMemoryStore("jwt")
	nav := NewNavigator(DefaultTable(), store)

	_, err := nav.Start("/")
	require.NoError(t, err)
	_, err = nav.Push("/about?x=1")
	require.NoError(t, err)

	snap := nav.Snapshot()
	require.NotNil(t, snap.Current)
	assert.Equal(t, "/about", snap.Current.Path)
	assert.Len(t, snap.Back, 1)

	restored := NewNavigator(DefaultTable(), store)
	restored.Restore(snap)

	loc, ok := restored.Current()
	require.True(t, ok)
	assert.Equal(t, "/about?x=1", loc.String())

	// Restored history is guarded again once the session ends
	require.NoError(t, store.ClearToken())
	loc, err = restored.Back()
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
}

func TestNavigator_Reload(t *testing.T) {
	store := session.NewMemoryStore("jwt")
	nav := NewNavigator(DefaultTable(), store)

	loc, err := nav.Reload("/")
	require.NoError(t, err)
	assert.Equal(t, "/", loc.Path)

	require.NoError(t, store.ClearToken())
	loc, err = nav.Reload("/")
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
}

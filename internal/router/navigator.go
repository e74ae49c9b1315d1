package router

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/myblog-dev/myblog/internal/session"
)

const maxRedirects = 8

var (
	ErrRedirectLoop = errors.New("too many guard redirects")
	ErrNoHistory    = errors.New("no history entry")
)

// Location is a committed navigation target
type Location struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Query string `json:"query,omitempty"`
}

func (l Location) String() string {
	if l.Query == "" {
		return l.Path
	}
	return l.Path + "?" + l.Query
}

// Transition is reported to hooks after a navigation commits
type Transition struct {
	From       *Location // nil on the initial navigation
	To         Location
	Requested  string
	Redirected bool
}

// Hook observes committed transitions
type Hook func(Transition)

// Navigator applies the guard to every transition and keeps back/forward history.
// It is safe for concurrent use.
type Navigator struct {
	mu      sync.Mutex
	table   *Table
	guard   Guard
	store   session.Store
	logger  zerolog.Logger
	hooks   []Hook
	current *Location
	back    []Location
	forward []Location
}

// Option configures a Navigator
type Option func(*Navigator)

func WithGuard(g Guard) Option {
	return func(n *Navigator) { n.guard = g }
}

func WithLogger(l zerolog.Logger) Option {
	return func(n *Navigator) { n.logger = l }
}

func WithHook(h Hook) Option {
	return func(n *Navigator) { n.hooks = append(n.hooks, h) }
}

// NewNavigator creates a navigator over a route table and a session store
func NewNavigator(table *Table, store session.Store, opts ...Option) *Navigator {
	n := &Navigator{
		table:  table,
		guard:  NewGuard(),
		store:  store,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Current returns the committed location, if any
func (n *Navigator) Current() (Location, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Location{}, false
	}
	return *n.current, true
}

// Start performs the initial navigation and resets history
func (n *Navigator) Start(location string) (Location, error) {
	n.mu.Lock()
	loc, redirected, err := n.resolve(location)
	if err != nil {
		n.mu.Unlock()
		return Location{}, err
	}
	n.back, n.forward = nil, nil
	t := n.commit(loc, location, redirected)
	n.mu.Unlock()

	n.notify(t)
	return loc, nil
}

// Push navigates to location, recording the current one in history
func (n *Navigator) Push(location string) (Location, error) {
	n.mu.Lock()
	loc, redirected, err := n.resolve(location)
	if err != nil {
		n.mu.Unlock()
		return Location{}, err
	}
	t := n.pushLocked(loc, location, redirected)
	n.mu.Unlock()

	n.notify(t)
	return loc, nil
}

// PushNamed navigates to the route with the given name
func (n *Navigator) PushNamed(name string) (Location, error) {
	m, err := n.table.ResolveName(name)
	if err != nil {
		return Location{}, err
	}
	return n.Push(m.Path)
}

// Replace navigates without adding a history entry
func (n *Navigator) Replace(location string) (Location, error) {
	n.mu.Lock()
	loc, redirected, err := n.resolve(location)
	if err != nil {
		n.mu.Unlock()
		return Location{}, err
	}
	t := n.commit(loc, location, redirected)
	n.mu.Unlock()

	n.notify(t)
	return loc, nil
}

// Back moves one entry back in history. The entry is guarded again,
// since the session may have changed since it was visited.
func (n *Navigator) Back() (Location, error) {
	n.mu.Lock()
	if len(n.back) == 0 {
		n.mu.Unlock()
		return Location{}, ErrNoHistory
	}
	target := n.back[len(n.back)-1]
	loc, redirected, err := n.resolve(target.String())
	if err != nil {
		n.mu.Unlock()
		return Location{}, err
	}
	n.back = n.back[:len(n.back)-1]
	if n.current != nil {
		n.forward = append(n.forward, *n.current)
	}
	t := n.commit(loc, target.String(), redirected)
	n.mu.Unlock()

	n.notify(t)
	return loc, nil
}

// Forward moves one entry forward in history, guarded like any transition
func (n *Navigator) Forward() (Location, error) {
	n.mu.Lock()
	if len(n.forward) == 0 {
		n.mu.Unlock()
		return Location{}, ErrNoHistory
	}
	target := n.forward[len(n.forward)-1]
	loc, redirected, err := n.resolve(target.String())
	if err != nil {
		n.mu.Unlock()
		return Location{}, err
	}
	n.forward = n.forward[:len(n.forward)-1]
	if n.current != nil {
		n.back = append(n.back, *n.current)
	}
	t := n.commit(loc, target.String(), redirected)
	n.mu.Unlock()

	n.notify(t)
	return loc, nil
}

// ForceLogin sends the user to the login route unless they are already there.
// The login route is committed without consulting the guard: the server has
// rejected the session even if a token is still stored.
// Concurrent callers are serialized, so a burst of callers redirects once.
func (n *Navigator) ForceLogin() (bool, error) {
	n.mu.Lock()
	if n.current != nil && n.current.Path == n.guard.LoginPath {
		n.mu.Unlock()
		return false, nil
	}
	m, err := n.table.ResolvePath(n.guard.LoginPath)
	if err != nil {
		n.mu.Unlock()
		return false, err
	}
	loc := Location{Path: m.Path, Name: m.Route.Name}
	t := n.pushLocked(loc, n.guard.LoginPath, false)
	n.mu.Unlock()

	n.notify(t)
	return true, nil
}

// resolve runs the guard until it allows a location, following redirects.
// The session is read on every hop. Caller must hold n.mu.
func (n *Navigator) resolve(location string) (Location, bool, error) {
	target := location
	redirected := false

	for hop := 0; hop <= maxRedirects; hop++ {
		m, err := n.table.ResolvePath(target)
		if err != nil {
			return Location{}, false, err
		}

		authenticated := session.Authenticated(n.store)
		decision := n.guard.Decide(m, authenticated)
		if decision.Outcome == Allow {
			return Location{Path: m.Path, Name: m.Route.Name, Query: queryOf(target)}, redirected, nil
		}

		n.logger.Debug().
			Str("from", target).
			Str("to", decision.To).
			Str("access", m.Access().String()).
			Bool("authenticated", authenticated).
			Msg("Navigation redirected by guard")

		target = decision.To
		redirected = true
	}

	return Location{}, false, fmt.Errorf("%w: %s", ErrRedirectLoop, location)
}

func (n *Navigator) pushLocked(loc Location, requested string, redirected bool) Transition {
	if n.current != nil {
		n.back = append(n.back, *n.current)
	}
	n.forward = nil
	return n.commit(loc, requested, redirected)
}

func (n *Navigator) commit(loc Location, requested string, redirected bool) Transition {
	t := Transition{From: n.current, To: loc, Requested: requested, Redirected: redirected}
	committed := loc
	n.current = &committed

	n.logger.Debug().
		Str("requested", requested).
		Str("path", loc.Path).
		Str("name", loc.Name).
		Msg("Navigation committed")

	return t
}

func (n *Navigator) notify(t Transition) {
	for _, h := range n.hooks {
		h(t)
	}
}

func queryOf(location string) string {
	_, rest, ok := strings.Cut(location, "?")
	if !ok {
		return ""
	}
	q, _, _ := strings.Cut(rest, "#")
	return q
}

// History is a serializable copy of the navigator's state
type History struct {
	Current *Location  `json:"current,omitempty"`
	Back    []Location `json:"back,omitempty"`
	Forward []Location `json:"forward,omitempty"`
}

// Snapshot returns a copy of the current location and history
func (n *Navigator) Snapshot() History {
	n.mu.Lock()
	defer n.mu.Unlock()

	h := History{
		Back:    append([]Location(nil), n.back...),
		Forward: append([]Location(nil), n.forward...),
	}
	if n.current != nil {
		cur := *n.current
		h.Current = &cur
	}
	return h
}

// Restore replaces the navigator's state with a snapshot. Nothing is guarded
// here; the restored entries are guarded when navigated to again.
func (n *Navigator) Restore(h History) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.back = append([]Location(nil), h.Back...)
	n.forward = append([]Location(nil), h.Forward...)
	n.current = nil
	if h.Current != nil {
		cur := *h.Current
		n.current = &cur
	}
}

// Reload re-runs the guard on the current location, like a page refresh
func (n *Navigator) Reload(fallback string) (Location, error) {
	cur, ok := n.Current()
	if !ok {
		return n.Start(fallback)
	}
	return n.Replace(cur.String())
}

package router

const (
	DefaultLoginPath = "/login"
	DefaultHomePath  = "/"
)

// Outcome is the result kind of a guard decision
type Outcome int

const (
	Allow Outcome = iota
	Redirect
)

// Decision is what the guard tells the navigator to do
type Decision struct {
	Outcome Outcome
	To      string // redirect target, empty on Allow
}

// Guard decides whether a transition may commit. It never touches the session.
type Guard struct {
	LoginPath string
	HomePath  string
}

// NewGuard returns a guard redirecting to /login and /
func NewGuard() Guard {
	return Guard{LoginPath: DefaultLoginPath, HomePath: DefaultHomePath}
}

// Decide evaluates the target's matched chain against the session state.
// The requires-auth rule is checked strictly before the guest-only rule.
func (g Guard) Decide(target Match, authenticated bool) Decision {
	requiresAuth, guestOnly := false, false
	for _, r := range target.Chain {
		switch r.Access {
		case RequiresAuth:
			requiresAuth = true
		case GuestOnly:
			guestOnly = true
		}
	}

	if requiresAuth && !authenticated {
		return Decision{Outcome: Redirect, To: g.LoginPath}
	}
	if guestOnly && authenticated {
		return Decision{Outcome: Redirect, To: g.HomePath}
	}
	return Decision{Outcome: Allow}
}

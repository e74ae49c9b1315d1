// Package router holds the client's static route table, the navigation guard
// that gates every transition on the session state, and a history-keeping
// navigator that applies the guard.
package router

import "fmt"

// Access is the access policy declared on a route
type Access int

const (
	// Public routes are reachable in any session state
	Public Access = iota
	// RequiresAuth routes need a persisted session token
	RequiresAuth
	// GuestOnly routes are only for anonymous visitors (login, register)
	GuestOnly
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case RequiresAuth:
		return "requires_auth"
	case GuestOnly:
		return "guest_only"
	default:
		return fmt.Sprintf("access(%d)", int(a))
	}
}

// ParseAccess parses the textual form used in route files
func ParseAccess(s string) (Access, error) {
	switch s {
	case "", "public":
		return Public, nil
	case "requires_auth", "requiresAuth", "auth":
		return RequiresAuth, nil
	case "guest_only", "guestOnly", "guest":
		return GuestOnly, nil
	default:
		return Public, fmt.Errorf("invalid access '%s', must be one of: public, requires_auth, guest_only", s)
	}
}

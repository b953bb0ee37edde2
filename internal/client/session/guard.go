package session

// Policy declares who may visit a route.
type Policy int

const (
	// PublicRoute is open to everyone.
	PublicRoute Policy = iota
	// GuestOnly is open only while no session is present (login, register).
	GuestOnly
	// MemberOnly requires an authenticated session.
	MemberOnly
)

func (p Policy) String() string {
	switch p {
	case PublicRoute:
		return "public"
	case GuestOnly:
		return "guest_only"
	case MemberOnly:
		return "member_only"
	default:
		return "unknown"
	}
}

// Action is what the caller should do with the requested route.
type Action int

const (
	// Wait means the session state is not known yet; hold the navigation.
	Wait Action = iota
	// Render means the route may be shown.
	Render
	// Redirect means the route is off-limits; go to Decision.Target instead.
	Redirect
)

// Decision is the guard's verdict for a single navigation.
type Decision struct {
	Action Action
	Target string
}

// Redirect targets.
const (
	LoginRoute = "/login"
	HomeRoute  = "/"
)

// Evaluate decides whether a route with the given policy may render under
// the given session state. It is a pure function of its inputs: while the
// state is Unresolved every non-public route waits rather than guessing,
// so a slow session probe never flashes a redirect.
func Evaluate(policy Policy, state State) Decision {
	if policy == PublicRoute {
		return Decision{Action: Render}
	}

	switch state {
	case StateUnresolved:
		return Decision{Action: Wait}
	case StateAbsent:
		if policy == MemberOnly {
			return Decision{Action: Redirect, Target: LoginRoute}
		}
		return Decision{Action: Render}
	case StatePresent:
		if policy == GuestOnly {
			return Decision{Action: Redirect, Target: HomeRoute}
		}
		return Decision{Action: Render}
	default:
		return Decision{Action: Wait}
	}
}

package session

// Decision is what a protected screen should do for a given state.
type Decision int

const (
	// DecisionWait means the durable token has not been read yet. Neither
	// render nor redirect.
	DecisionWait Decision = iota
	DecisionAllow
	DecisionRedirectLogin
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect_login"
	default:
		return "unknown"
	}
}

// Gate decides access to protected screens.
func Gate(st State) Decision {
	switch {
	case !st.Hydrated:
		return DecisionWait
	case st.Token != "":
		return DecisionAllow
	default:
		return DecisionRedirectLogin
	}
}

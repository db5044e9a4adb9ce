package entity

// State is the phone verification state of an account. An unregistered
// phone has no account and therefore no state.
type State int16

const (
	StateUnknown             State = 0
	StatePendingVerification State = 1
	StateVerified            State = 2
)

func (s State) String() string {
	switch s {
	case StatePendingVerification:
		return "PendingVerification"
	case StateVerified:
		return "Verified"
	default:
		return "Unknown"
	}
}

// LoginField is the account column a login identifier is matched against.
type LoginField int16

const (
	LoginFieldUsername LoginField = 1
	LoginFieldPhone    LoginField = 2
	LoginFieldEmail    LoginField = 3
)

func (f LoginField) String() string {
	switch f {
	case LoginFieldPhone:
		return "phone"
	case LoginFieldEmail:
		return "email"
	default:
		return "username"
	}
}

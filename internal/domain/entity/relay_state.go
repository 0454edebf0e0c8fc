package entity

// RelayState is the state of the multi-step sign-in flow. Each variant maps
// to exactly one screen.
type RelayState interface {
	Name() string
	Screen() string
	relayState()
}

// RelayIdle is the state before credentials are submitted.
type RelayIdle struct{}

// RelayCredentialsSubmitted waits for the provider's answer to the password.
type RelayCredentialsSubmitted struct {
	Username string
}

// RelayChallengeIssued shows a challenge form.
type RelayChallengeIssued struct {
	Challenge ChallengeSession
}

// RelayChallengeAnswered waits for the provider's answer to a challenge.
type RelayChallengeAnswered struct {
	Challenge ChallengeSession
}

// RelaySignedIn is the terminal success state.
type RelaySignedIn struct {
	Session Session
}

// RelayFailed keeps the user on the screen they came from with a reason.
type RelayFailed struct {
	Reason   string
	Previous RelayState
}

func (RelayIdle) Name() string                 { return "idle" }
func (RelayCredentialsSubmitted) Name() string { return "credentials_submitted" }
func (RelayChallengeIssued) Name() string      { return "challenge_issued" }
func (RelayChallengeAnswered) Name() string    { return "challenge_answered" }
func (RelaySignedIn) Name() string             { return "signed_in" }
func (RelayFailed) Name() string               { return "failed" }

func (RelayIdle) Screen() string                 { return ScreenLogin }
func (RelayCredentialsSubmitted) Screen() string { return ScreenLogin }
func (s RelayChallengeIssued) Screen() string    { return s.Challenge.Kind.Screen() }
func (s RelayChallengeAnswered) Screen() string  { return s.Challenge.Kind.Screen() }
func (RelaySignedIn) Screen() string             { return ScreenDashboard }

func (s RelayFailed) Screen() string {
	if s.Previous == nil {
		return ScreenLogin
	}

	return s.Previous.Screen()
}

func (RelayIdle) relayState()                 {}
func (RelayCredentialsSubmitted) relayState() {}
func (RelayChallengeIssued) relayState()      {}
func (RelayChallengeAnswered) relayState()    {}
func (RelaySignedIn) relayState()             {}
func (RelayFailed) relayState()               {}

// PendingChallenge returns the challenge the user still has to answer, if any.
func PendingChallenge(state RelayState) (ChallengeSession, bool) {
	switch s := state.(type) {
	case RelayChallengeIssued:
		return s.Challenge, true
	case RelayFailed:
		return PendingChallenge(s.Previous)
	default:
		return ChallengeSession{}, false
	}
}

// RelayView is the renderable form of a relay state.
type RelayView struct {
	State     string            `json:"state"`
	Screen    string            `json:"screen"`
	Error     string            `json:"error,omitempty"`
	Challenge *ChallengeSession `json:"challenge,omitempty"`
}

// DescribeRelay renders a relay state for a screen.
func DescribeRelay(state RelayState) RelayView {
	view := RelayView{
		State:  state.Name(),
		Screen: state.Screen(),
	}

	if failed, ok := state.(RelayFailed); ok {
		view.Error = failed.Reason
	}
	if challenge, ok := PendingChallenge(state); ok {
		view.Challenge = &challenge
	}

	return view
}

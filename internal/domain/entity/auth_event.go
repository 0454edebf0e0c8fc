package entity

import "time"

// AuthEventKind is an authentication lifecycle notification.
type AuthEventKind string

const (
	AuthEventSignIn                AuthEventKind = "signIn"
	AuthEventSignOut               AuthEventKind = "signOut"
	AuthEventSignUp                AuthEventKind = "signUp"
	AuthEventConfirmSignUp         AuthEventKind = "confirmSignUp"
	AuthEventCustomChallenge       AuthEventKind = "customChallenge"
	AuthEventCustomChallengeAnswer AuthEventKind = "customChallengeAnswer"
)

// ChangesSession reports whether the event requires re-reading the session.
func (k AuthEventKind) ChangesSession() bool {
	return k == AuthEventSignIn || k == AuthEventSignOut
}

// AuthEvent is published for auditing and sent to the session tracker.
type AuthEvent struct {
	Kind       AuthEventKind `json:"kind"`
	Username   string        `json:"username,omitempty"`
	ClientID   string        `json:"client_id"`
	RequestID  string        `json:"request_id,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

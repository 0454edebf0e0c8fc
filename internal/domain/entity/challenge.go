package entity

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ChallengeKind is the kind of extra proof the provider asks for after the password.
type ChallengeKind string

const (
	ChallengeSecurityQuestion ChallengeKind = "security_question"
	ChallengeCipherPuzzle     ChallengeKind = "cipher_puzzle"
)

// Screen returns the route where the challenge is answered.
func (k ChallengeKind) Screen() string {
	if k == ChallengeSecurityQuestion {
		return ScreenQuestion
	}

	return ScreenCaesar
}

// Challenge parameter keys sent by the custom auth flow.
const (
	ChallengeParamQuestion = "question"
	ChallengeParamClue     = "clue"
	ChallengeParamShift    = "shift"
)

// ErrInvalidShift is returned when a cipher challenge carries a non-numeric shift.
var ErrInvalidShift = errors.New("cipher challenge shift is not a number")

// ChallengeSession is one pending round of the sign-in flow. A new value
// replaces the old one on every round; it is never mutated in place.
type ChallengeSession struct {
	Username     string        `json:"-"`
	SessionToken string        `json:"-"`
	Kind         ChallengeKind `json:"kind"`
	Question     string        `json:"question,omitempty"`
	Clue         string        `json:"clue,omitempty"`
	Shift        int           `json:"shift,omitempty"`
	Round        int           `json:"round"`
}

// ClassifyChallenge builds the challenge for a parameter bag. A bag with a
// question is a security question; anything else is a cipher puzzle whose
// shift is read from the same bag (missing means 0).
func ClassifyChallenge(username, sessionToken string, round int, params map[string]string) (ChallengeSession, error) {
	challenge := ChallengeSession{
		Username:     username,
		SessionToken: sessionToken,
		Round:        round,
	}

	if question, ok := params[ChallengeParamQuestion]; ok {
		challenge.Kind = ChallengeSecurityQuestion
		challenge.Question = question

		return challenge, nil
	}

	challenge.Kind = ChallengeCipherPuzzle
	challenge.Clue = params[ChallengeParamClue]

	rawShift := strings.TrimSpace(params[ChallengeParamShift])
	if rawShift == "" {
		return challenge, nil
	}

	shift, err := strconv.Atoi(rawShift)
	if err != nil {
		return ChallengeSession{}, errors.Wrapf(ErrInvalidShift, "shift %q", rawShift)
	}
	challenge.Shift = shift

	return challenge, nil
}

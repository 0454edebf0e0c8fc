package entity

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyChallenge_SecurityQuestion(t *testing.T) {
	challenge, err := ClassifyChallenge("alice", "sess-1", 1, map[string]string{
		"question": "What is your favourite food?",
	})
	require.NoError(t, err)

	assert.Equal(t, ChallengeSecurityQuestion, challenge.Kind)
	assert.Equal(t, "What is your favourite food?", challenge.Question)
	assert.Equal(t, "sess-1", challenge.SessionToken)
	assert.Equal(t, ScreenQuestion, challenge.Kind.Screen())
}

func TestClassifyChallenge_CipherPuzzle(t *testing.T) {
	challenge, err := ClassifyChallenge("alice", "sess-2", 2, map[string]string{
		"clue":  "Ulghvdih",
		"shift": "3",
	})
	require.NoError(t, err)

	assert.Equal(t, ChallengeCipherPuzzle, challenge.Kind)
	assert.Equal(t, "Ulghvdih", challenge.Clue)
	assert.Equal(t, 3, challenge.Shift)
	assert.Equal(t, 2, challenge.Round)
	assert.Equal(t, ScreenCaesar, challenge.Kind.Screen())
}

func TestClassifyChallenge_MissingShiftIsZero(t *testing.T) {
	challenge, err := ClassifyChallenge("alice", "sess", 1, map[string]string{"clue": "abc"})
	require.NoError(t, err)
	assert.Equal(t, 0, challenge.Shift)
}

func TestClassifyChallenge_InvalidShift(t *testing.T) {
	_, err := ClassifyChallenge("alice", "sess", 1, map[string]string{"clue": "abc", "shift": "three"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidShift))
}

func TestRelayStateScreens(t *testing.T) {
	question := ChallengeSession{Kind: ChallengeSecurityQuestion, Question: "q"}
	cipher := ChallengeSession{Kind: ChallengeCipherPuzzle, Clue: "c", Shift: 2}

	tests := []struct {
		name  string
		state RelayState
		want  string
	}{
		{name: "idle", state: RelayIdle{}, want: ScreenLogin},
		{name: "submitted", state: RelayCredentialsSubmitted{Username: "a"}, want: ScreenLogin},
		{name: "question", state: RelayChallengeIssued{Challenge: question}, want: ScreenQuestion},
		{name: "cipher", state: RelayChallengeIssued{Challenge: cipher}, want: ScreenCaesar},
		{name: "answered", state: RelayChallengeAnswered{Challenge: cipher}, want: ScreenCaesar},
		{name: "signed in", state: RelaySignedIn{}, want: ScreenDashboard},
		{name: "failed on login", state: RelayFailed{Reason: "x", Previous: RelayIdle{}}, want: ScreenLogin},
		{name: "failed on question", state: RelayFailed{Reason: "x", Previous: RelayChallengeIssued{Challenge: question}}, want: ScreenQuestion},
		{name: "failed without previous", state: RelayFailed{Reason: "x"}, want: ScreenLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Screen())
		})
	}
}

func TestDescribeRelay_KeepsChallengeOnFailure(t *testing.T) {
	cipher := ChallengeSession{Kind: ChallengeCipherPuzzle, Clue: "Vfrrw", Shift: 3}
	view := DescribeRelay(RelayFailed{
		Reason:   "Challenge response failed. Please try again.",
		Previous: RelayChallengeIssued{Challenge: cipher},
	})

	assert.Equal(t, "failed", view.State)
	assert.Equal(t, ScreenCaesar, view.Screen)
	assert.Equal(t, "Challenge response failed. Please try again.", view.Error)
	require.NotNil(t, view.Challenge)
	assert.Equal(t, "Vfrrw", view.Challenge.Clue)
	assert.Equal(t, 3, view.Challenge.Shift)
}

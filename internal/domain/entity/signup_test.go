package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeDraft() SignupDraft {
	return SignupDraft{
		Email:       "alice@example.com",
		Password:    "Secret123!",
		Name:        "Alice",
		AccountType: AccountTypeCustomer,
		Questions: [SecurityQuestionSlots]SecurityAnswer{
			{Question: SecurityQuestions[0], Answer: "pizza"},
			{Question: SecurityQuestions[1], Answer: "halifax"},
			{Question: SecurityQuestions[2], Answer: "blue"},
		},
	}
}

func TestSignupDraft_BasicsComplete(t *testing.T) {
	draft := completeDraft()
	assert.True(t, draft.BasicsComplete())

	draft.Name = "  "
	assert.False(t, draft.BasicsComplete())

	draft = completeDraft()
	draft.AccountType = ""
	assert.False(t, draft.BasicsComplete())
}

func TestSignupDraft_Questions(t *testing.T) {
	draft := completeDraft()
	assert.True(t, draft.QuestionsComplete())
	assert.True(t, draft.QuestionsDistinct())

	draft.Questions[2].Answer = ""
	assert.False(t, draft.QuestionsComplete())

	draft = completeDraft()
	draft.Questions[2].Question = SecurityQuestions[0]
	assert.True(t, draft.QuestionsComplete())
	assert.False(t, draft.QuestionsDistinct())

	draft = completeDraft()
	draft.Questions[1].Question = "What is your pet's name?"
	assert.False(t, draft.QuestionsDistinct())
}

func TestSignupDraft_AvailableQuestions(t *testing.T) {
	draft := SignupDraft{}
	draft.Questions[0].Question = SecurityQuestions[0]
	draft.Questions[1].Question = SecurityQuestions[2]

	assert.Equal(t, []string{SecurityQuestions[1], SecurityQuestions[3]}, draft.AvailableQuestions(2))
	assert.Equal(t, []string{SecurityQuestions[0], SecurityQuestions[1], SecurityQuestions[3]}, draft.AvailableQuestions(0))
}

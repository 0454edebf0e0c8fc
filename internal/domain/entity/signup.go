package entity

import (
	"slices"
	"strings"
)

// SecurityQuestions is the catalogue offered during sign-up.
var SecurityQuestions = []string{
	"What is your favourite food?",
	"What is your favourite place?",
	"What is your favourite color?",
	"What is your favourite car?",
}

// SecurityQuestionSlots is how many questions every account answers.
const SecurityQuestionSlots = 3

// SignupStep is the page of the two-step sign-up form.
type SignupStep int

const (
	SignupStepBasics SignupStep = iota + 1
	SignupStepQuestions
)

// SecurityAnswer pairs a chosen question with the user's answer.
type SecurityAnswer struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// SignupDraft is the in-progress registration form.
type SignupDraft struct {
	Email       string                                `json:"email"`
	Password    string                                `json:"password"`
	Name        string                                `json:"name"`
	AccountType AccountType                           `json:"accountType"`
	Questions   [SecurityQuestionSlots]SecurityAnswer `json:"questions"`
	Step        SignupStep                            `json:"step"`
}

// BasicsComplete reports whether the first step has every field.
func (d SignupDraft) BasicsComplete() bool {
	return strings.TrimSpace(d.Email) != "" &&
		d.Password != "" &&
		strings.TrimSpace(d.Name) != "" &&
		d.AccountType.IsValid()
}

// QuestionsComplete reports whether every slot has a question and an answer.
func (d SignupDraft) QuestionsComplete() bool {
	for _, qa := range d.Questions {
		if strings.TrimSpace(qa.Question) == "" || strings.TrimSpace(qa.Answer) == "" {
			return false
		}
	}

	return true
}

// QuestionsDistinct reports whether the chosen questions are pairwise different
// and all come from the catalogue.
func (d SignupDraft) QuestionsDistinct() bool {
	seen := make([]string, 0, SecurityQuestionSlots)
	for _, qa := range d.Questions {
		if !slices.Contains(SecurityQuestions, qa.Question) || slices.Contains(seen, qa.Question) {
			return false
		}
		seen = append(seen, qa.Question)
	}

	return true
}

// AvailableQuestions lists the options for one slot: the catalogue minus the
// questions chosen in the other slots.
func (d SignupDraft) AvailableQuestions(slot int) []string {
	taken := make([]string, 0, SecurityQuestionSlots)
	for i, qa := range d.Questions {
		if i != slot && qa.Question != "" {
			taken = append(taken, qa.Question)
		}
	}

	options := make([]string, 0, len(SecurityQuestions))
	for _, q := range SecurityQuestions {
		if !slices.Contains(taken, q) {
			options = append(options, q)
		}
	}

	return options
}

// Answers returns the trimmed question/answer pairs.
func (d SignupDraft) Answers() []SecurityAnswer {
	answers := make([]SecurityAnswer, 0, SecurityQuestionSlots)
	for _, qa := range d.Questions {
		answers = append(answers, SecurityAnswer{
			Question: qa.Question,
			Answer:   strings.TrimSpace(qa.Answer),
		})
	}

	return answers
}

// Registration is what the identity provider needs to create an account.
type Registration struct {
	Email       string
	Password    string
	Name        string
	AccountType AccountType
	Questions   []SecurityAnswer
}

// SignupResult reports whether the account still needs e-mail confirmation.
type SignupResult struct {
	UserID       string `json:"userId,omitempty"`
	NeedsConfirm bool   `json:"needsConfirmation"`
	CodeDelivery string `json:"codeDelivery,omitempty"`
}

package usecase

import (
	"context"

	"scooter/internal/domain/entity"
)

// Messages shown after registration steps.
const (
	MsgRegistered = "Registration successful! Please check your email for the verification code."
	MsgVerified   = "Email verified! Please log in."
)

// RegistrationUsecase handles sign-up and e-mail confirmation.
type RegistrationUsecase interface {
	// AdvanceToQuestions validates the first step and moves the draft to the second.
	AdvanceToQuestions(draft entity.SignupDraft) (entity.SignupDraft, error)

	// Submit validates the security questions and creates the account.
	Submit(ctx context.Context, draft entity.SignupDraft) (*entity.SignupResult, error)

	// Confirm submits the e-mailed code once; there is no retry.
	Confirm(ctx context.Context, email, code string) error

	// AvailableQuestions lists the options of one question slot.
	AvailableQuestions(draft entity.SignupDraft, slot int) []string
}

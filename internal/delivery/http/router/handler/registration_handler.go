package handler

import (
	"log/slog"

	"scooter/internal/delivery/http/response"
	"scooter/internal/domain/entity"
	"scooter/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RegistrationHandlerParams holds dependencies for RegistrationHandler, injected by Fx.
type RegistrationHandlerParams struct {
	fx.In

	Logger *slog.Logger
}

// RegistrationHandler serves the two-step sign-up form and e-mail verification.
type RegistrationHandler struct {
	logger *slog.Logger
}

// NewRegistrationHandler is the constructor for RegistrationHandler.
func NewRegistrationHandler(params RegistrationHandlerParams) *RegistrationHandler {
	return &RegistrationHandler{logger: params.Logger}
}

// RegisterScreenView lists what the sign-up form offers.
type RegisterScreenView struct {
	Questions    []string             `json:"questions"`
	AccountTypes []entity.AccountType `json:"accountTypes"`
	Draft        entity.SignupDraft   `json:"draft"`
}

// QuestionOptionsRequest asks for the options of one question slot.
type QuestionOptionsRequest struct {
	Draft entity.SignupDraft `json:"draft"`
	Slot  int                `json:"slot" validate:"min=0,max=2"`
}

// VerifyRequest is the body of POST /verify. Emptiness is checked by the use case.
type VerifyRequest struct {
	Email string `json:"email" form:"email"`
	Code  string `json:"code" form:"code"`
}

// SignupView is returned once the account was created.
type SignupView struct {
	Email  string               `json:"email"`
	Result *entity.SignupResult `json:"result"`
}

// RegisterScreen opens an empty sign-up form.
func (h *RegistrationHandler) RegisterScreen(c echo.Context) error {
	return response.Screen(c, entity.ScreenRegister, RegisterScreenView{
		Questions:    entity.SecurityQuestions,
		AccountTypes: []entity.AccountType{entity.AccountTypeCustomer, entity.AccountTypeFranchise},
		Draft:        entity.SignupDraft{AccountType: entity.AccountTypeCustomer, Step: entity.SignupStepBasics},
	}, "")
}

// AdvanceToQuestions validates the first step.
func (h *RegistrationHandler) AdvanceToQuestions(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	var draft entity.SignupDraft
	if err := bind(c, &draft); err != nil {
		return err
	}

	next, err := ws.Registration.AdvanceToQuestions(draft)
	if err != nil {
		return response.ErrorWithView(c, err, entity.ScreenRegister, redacted(next))
	}

	return response.Screen(c, entity.ScreenRegister, redacted(next), "")
}

// QuestionOptions lists the questions still available for a slot.
func (h *RegistrationHandler) QuestionOptions(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	var req QuestionOptionsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenRegister, ws.Registration.AvailableQuestions(req.Draft, req.Slot), "")
}

// Register creates the account.
func (h *RegistrationHandler) Register(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	var draft entity.SignupDraft
	if err := bind(c, &draft); err != nil {
		return err
	}

	result, err := ws.Registration.Submit(c.Request().Context(), draft)
	if err != nil {
		return response.ErrorWithView(c, err, entity.ScreenRegister, redacted(draft))
	}

	return response.Screen(c, entity.ScreenVerify, SignupView{Email: draft.Email, Result: result}, usecase.MsgRegistered)
}

// Verify confirms the e-mailed code.
func (h *RegistrationHandler) Verify(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	var req VerifyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := ws.Registration.Confirm(c.Request().Context(), req.Email, req.Code); err != nil {
		return response.ErrorWithView(c, err, entity.ScreenVerify, VerifyRequest{Email: req.Email})
	}

	return response.Screen(c, entity.ScreenLogin, nil, usecase.MsgVerified)
}

// redacted never echoes the password back.
func redacted(draft entity.SignupDraft) entity.SignupDraft {
	draft.Password = ""

	return draft
}

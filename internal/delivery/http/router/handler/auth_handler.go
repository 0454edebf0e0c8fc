package handler

import (
	"log/slog"

	"scooter/internal/delivery/http/response"
	"scooter/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	Logger *slog.Logger
}

// AuthHandler drives the challenge relay: login, security question, cipher
// puzzle and logout screens.
type AuthHandler struct {
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{logger: params.Logger}
}

// LoginRequest is the body of POST /login. Emptiness is checked by the relay.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// ChallengeAnswerRequest is the body of POST /question and POST /caesar.
type ChallengeAnswerRequest struct {
	Answer string `json:"answer" form:"answer"`
}

// Session returns who is signed in.
func (h *AuthHandler) Session(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	return response.Screen(c, entity.ScreenHome, ws.Session.Verify(c.Request().Context()), "")
}

// LoginScreen opens the login form, discarding any unanswered challenge.
func (h *AuthHandler) LoginScreen(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	ws.Relay.Abandon()

	return response.Screen(c, entity.ScreenLogin, entity.DescribeRelay(ws.Relay.State()), "")
}

// Login submits the credentials.
func (h *AuthHandler) Login(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	state, err := ws.Relay.SubmitCredentials(c.Request().Context(), req.Email, req.Password)

	return relayResult(c, state, err)
}

// ChallengeScreen shows the pending challenge. Visiting the wrong challenge
// screen redirects to the one the relay is on.
func (h *AuthHandler) ChallengeScreen(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	state := ws.Relay.State()
	if state.Screen() != c.Path() {
		return response.Redirect(c, state.Screen())
	}

	return response.Screen(c, state.Screen(), entity.DescribeRelay(state), "")
}

// AnswerChallenge submits the answer to the pending challenge.
func (h *AuthHandler) AnswerChallenge(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	var req ChallengeAnswerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	state, err := ws.Relay.SubmitChallengeAnswer(c.Request().Context(), req.Answer)

	return relayResult(c, state, err)
}

// Logout signs out. The local session is gone even when the provider call fails.
func (h *AuthHandler) Logout(c echo.Context) error {
	ws, err := workspace(c)
	if err != nil {
		return err
	}

	signOutErr := ws.Relay.SignOut(c.Request().Context())
	view := entity.DescribeRelay(ws.Relay.State())
	if signOutErr != nil {
		h.logger.Warn("Sign-out reported an error", slog.Any("error", signOutErr))

		return response.ErrorWithView(c, signOutErr, entity.ScreenLogin, view)
	}

	return response.Screen(c, entity.ScreenLogin, view, "")
}

func relayResult(c echo.Context, state entity.RelayState, err error) error {
	if state == nil {
		state = entity.RelayIdle{}
	}

	view := entity.DescribeRelay(state)
	if err != nil {
		return response.ErrorWithView(c, err, state.Screen(), view)
	}

	return response.Screen(c, state.Screen(), view, "")
}

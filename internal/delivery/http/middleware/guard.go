package middleware

import (
	"scooter/internal/delivery/http/response"
	"scooter/internal/delivery/http/session"
	"scooter/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// RequireSession lets a request through only when the workspace's session
// satisfies requirement. A session that is still loading gets a retry hint;
// an expired one is resolved again before the decision.
func RequireSession(requirement entity.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ws, ok := session.Workspace(c)
			if !ok {
				return response.Redirect(c, entity.ScreenLogin)
			}

			decision := entity.Guard(ws.Session.Verify(c.Request().Context()), requirement)
			switch decision.Kind {
			case entity.DecisionLoading:
				return response.Loading(c)
			case entity.DecisionRedirect:
				return response.Redirect(c, decision.Location)
			default:
				return next(c)
			}
		}
	}
}

// RequireScreen guards a route with the requirement registered for screen.
func RequireScreen(screen string) echo.MiddlewareFunc {
	return RequireSession(entity.RequirementFor(screen))
}

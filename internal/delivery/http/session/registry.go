// Package session maps portal visitors to their workspaces.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"scooter/config"
	deliverycontext "scooter/internal/delivery/context"
	"scooter/internal/domain/lifecycle"
	"scooter/internal/domain/service"
	"scooter/internal/infra/metrics"
	"scooter/internal/usecase"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RegistryParams holds dependencies for Registry, injected by Fx.
type RegistryParams struct {
	fx.In

	Config   *config.Config
	Factory  usecase.WorkspaceFactory
	Profiles service.ProfileStore
	Logger   *slog.Logger
}

// guestWorkspaceID names the shared workspace of visitors without a cookie.
const guestWorkspaceID = "guest"

// Registry holds one workspace per visitor cookie. Workspaces idle for longer
// than the configured TTL are evicted together with their profile snapshot.
// Only the sign-in and sign-up routes create workspaces; every other route
// serves visitors without one from a shared guest workspace that never signs in.
type Registry struct {
	cookieName string
	secure     bool
	ttl        time.Duration
	factory    usecase.WorkspaceFactory
	profiles   service.ProfileStore
	logger     *slog.Logger
	workspaces *expirable.LRU[string, *usecase.Workspace]

	guestOnce sync.Once
	guest     *usecase.Workspace
}

// NewRegistry is the constructor for Registry.
func NewRegistry(params RegistryParams) *Registry {
	portal := params.Config.Portal
	r := &Registry{
		cookieName: portal.CookieName,
		secure:     portal.SecureCookie,
		ttl:        portal.WorkspaceTTL,
		factory:    params.Factory,
		profiles:   params.Profiles,
		logger:     params.Logger,
	}
	r.workspaces = expirable.NewLRU(portal.MaxWorkspaces, r.evicted, portal.WorkspaceTTL)

	return r
}

// evicted runs under the LRU's lock, so cleanup happens elsewhere.
// A signed-in workspace is signed out so its refresh token is revoked.
func (r *Registry) evicted(id string, ws *usecase.Workspace) {
	metrics.ActiveWorkspaces.Dec()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		if ws != nil && ws.Session.Current().IsAuthenticated {
			if err := ws.Session.SignOut(ctx); err != nil {
				r.logger.Warn("Failed to sign out evicted workspace",
					slog.String("workspace_id", id),
					slog.Any("error", err),
				)
			}
		}

		if err := r.profiles.Delete(ctx, id); err != nil {
			r.logger.Warn("Failed to drop profile snapshot of evicted workspace",
				slog.String("workspace_id", id),
				slog.Any("error", err),
			)
		}
	}()
}

// Len reports how many workspaces are held.
func (r *Registry) Len() int {
	return r.workspaces.Len()
}

// Attach resolves the visitor's workspace, creating one when the cookie is
// missing, malformed or expired, and stores it in the echo context.
func (r *Registry) Attach(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ws := r.lookup(c)
		if ws == nil {
			ws = r.create(c)
		}

		// Re-adding refreshes the idle deadline.
		r.workspaces.Add(ws.ID, ws)

		return r.serve(c, ws, next)
	}
}

// Peek attaches the visitor's workspace when one exists and the shared guest
// workspace otherwise. It never creates a workspace or sets a cookie.
func (r *Registry) Peek(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ws := r.lookup(c)
		if ws == nil {
			return r.serve(c, r.guestWorkspace(), next)
		}

		r.workspaces.Add(ws.ID, ws)

		return r.serve(c, ws, next)
	}
}

func (r *Registry) serve(c echo.Context, ws *usecase.Workspace, next echo.HandlerFunc) error {
	c.Set(string(deliverycontext.KeyWorkspace), ws)
	c.SetRequest(c.Request().WithContext(
		deliverycontext.WithWorkspace(c.Request().Context(), ws.ID, r.logger),
	))

	return next(c)
}

// guestWorkspace holds no tokens, so resolving it never leaves the process.
func (r *Registry) guestWorkspace() *usecase.Workspace {
	r.guestOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()

		r.guest = r.factory.NewWorkspace(guestWorkspaceID)
		r.guest.Session.Resolve(ctx)
	})

	return r.guest
}

func (r *Registry) lookup(c echo.Context) *usecase.Workspace {
	cookie, err := c.Cookie(r.cookieName)
	if err != nil {
		return nil
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return nil
	}

	ws, ok := r.workspaces.Get(cookie.Value)
	if !ok {
		return nil
	}

	return ws
}

func (r *Registry) create(c echo.Context) *usecase.Workspace {
	id := uuid.NewString()
	ws := r.factory.NewWorkspace(id)
	metrics.ActiveWorkspaces.Inc()

	c.SetCookie(&http.Cookie{
		Name:     r.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(r.ttl.Seconds()),
		HttpOnly: true,
		Secure:   r.secure,
		SameSite: http.SameSiteLaxMode,
	})

	logger := deliverycontext.Logger(c.Request().Context(), r.logger)
	logger.Info("Workspace created", slog.String("workspace_id", id))

	// The first resolution runs detached from the request; until it finishes
	// guarded screens answer with the loading placeholder.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancel()
		ws.Session.Resolve(ctx)
	}()

	return ws
}

// Workspace returns the workspace attached to the request.
func Workspace(c echo.Context) (*usecase.Workspace, bool) {
	ws, ok := c.Get(string(deliverycontext.KeyWorkspace)).(*usecase.Workspace)

	return ws, ok && ws != nil
}

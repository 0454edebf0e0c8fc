package entity

import (
	"slices"
	"strings"
	"time"
)

// Principal is what the identity provider knows about the current sign-in.
type Principal struct {
	UserID   string
	Username string
	Email    string
	Name     string
	Groups   []string
	// IDToken is sent as the bearer token to the rental API.
	IDToken   string
	ExpiresAt time.Time
}

// Session is the client's view of who is signed in.
// Role is RoleGuest exactly when IsAuthenticated is false.
type Session struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	Role            Role   `json:"role"`
	UserID          string `json:"userId,omitempty"`
	Username        string `json:"username,omitempty"`
	Email           string `json:"email,omitempty"`
	DisplayName     string `json:"displayName,omitempty"`
	IsLoading       bool   `json:"isLoading"`
}

// NewLoadingSession is the state before the first resolution completes.
func NewLoadingSession() Session {
	return Session{Role: RoleGuest, IsLoading: true}
}

// GuestSession is the state after sign-out, expiry or a failed resolution.
func GuestSession() Session {
	return Session{Role: RoleGuest}
}

// SessionFromPrincipal builds an authenticated session.
func SessionFromPrincipal(p *Principal, role Role) Session {
	return Session{
		IsAuthenticated: true,
		Role:            role,
		UserID:          p.UserID,
		Username:        p.Username,
		Email:           p.Email,
		DisplayName:     p.Name,
	}
}

// IsAdmin reports whether the session belongs to a franchise operator.
func (s Session) IsAdmin() bool {
	return s.IsAuthenticated && s.Role == RoleAdmin
}

// IsCustomer reports whether the session belongs to a customer.
func (s Session) IsCustomer() bool {
	return s.IsAuthenticated && s.Role == RoleCustomer
}

// NormalizeGroups turns the raw groups claim into a deduplicated list.
// The claim may be absent, a single string or a list.
func NormalizeGroups(raw any) []string {
	var groups []string

	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		groups = append(groups, v)
	case []string:
		groups = append(groups, v...)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				groups = append(groups, s)
			}
		}
	}

	result := make([]string, 0, len(groups))
	for _, g := range groups {
		g = strings.TrimSpace(g)
		if g == "" || slices.Contains(result, g) {
			continue
		}
		result = append(result, g)
	}

	return result
}

// ProfileSnapshot is a display cache written on sign-in. It is never used
// to make authorization decisions.
type ProfileSnapshot struct {
	ID    string `json:"userId"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"userType"`
}

// SnapshotFromSession copies the displayable fields of a session.
func SnapshotFromSession(s Session) ProfileSnapshot {
	return ProfileSnapshot{
		ID:    s.UserID,
		Email: s.Email,
		Name:  s.DisplayName,
		Role:  s.Role,
	}
}

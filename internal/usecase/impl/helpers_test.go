package impl

import (
	"io"
	"log/slog"
	"sync"

	"scooter/internal/domain/entity"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testMapping = entity.GroupMapping{AdminGroup: "AdminGroup", CustomerGroup: "CustomerGroup"}

// tokenRecorder records what the tracker hands to the REST client.
type tokenRecorder struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (r *tokenRecorder) SetBearerToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = token
}

func (r *tokenRecorder) ClearBearerToken() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = ""
	r.cleared++
}

func (r *tokenRecorder) Token() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.token
}

func customerPrincipal() *entity.Principal {
	return &entity.Principal{
		UserID:   "sub-123",
		Username: "ana@example.com",
		Email:    "ana@example.com",
		Name:     "Ana",
		Groups:   []string{"CustomerGroup"},
		IDToken:  "id-token-customer",
	}
}

func adminPrincipal() *entity.Principal {
	return &entity.Principal{
		UserID:   "sub-999",
		Username: "ops@example.com",
		Email:    "ops@example.com",
		Name:     "Ops",
		Groups:   []string{"CustomerGroup", "AdminGroup"},
		IDToken:  "id-token-admin",
	}
}

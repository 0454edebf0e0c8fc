package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusError struct {
	status int
}

func (e *statusError) Error() string { return "status error" }

func TestAsTarget(t *testing.T) {
	base := &statusError{status: 404}
	wrapped := Wrap(Wrap(base, "fetch bikes"), "catalog")

	got, ok := AsTarget[*statusError](wrapped)
	assert.True(t, ok)
	assert.Equal(t, 404, got.status)

	_, ok = AsTarget[*statusError](New("plain"))
	assert.False(t, ok)
}

func TestWrapKeepsIdentity(t *testing.T) {
	sentinel := New("sentinel")
	wrapped := Wrap(WithStack(sentinel), "load bookings")

	assert.True(t, Is(wrapped, sentinel))
	assert.Equal(t, "load bookings: sentinel", wrapped.Error())
}

func TestNilStaysNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "read command"))
	assert.NoError(t, WithStack(nil))
}

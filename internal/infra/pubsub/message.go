package pubsub

import (
	"encoding/json"

	"scooter/internal/domain/entity"

	"github.com/pkg/errors"
)

// auditMessage is one auth event as it goes on the wire. Events of the same
// client share an ordering key so a sign-out is never delivered before the
// sign-in it ends.
type auditMessage struct {
	data        []byte
	attributes  map[string]string
	orderingKey string
}

func newAuditMessage(event entity.AuthEvent) (auditMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return auditMessage{}, errors.Wrap(err, "encode auth event")
	}

	attributes := map[string]string{
		"kind":      string(event.Kind),
		"client_id": event.ClientID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return auditMessage{
		data:        data,
		attributes:  attributes,
		orderingKey: event.ClientID,
	}, nil
}

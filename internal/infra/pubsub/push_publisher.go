package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"scooter/internal/domain/entity"
	"scooter/internal/domain/service"
	"scooter/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	localSubscription = "projects/local/subscriptions/auth-events"
	pushTimeout       = 10 * time.Second
)

// PushMessage is the body Pub/Sub push subscriptions deliver. The local
// publisher posts the same shape so an audit consumer runs unchanged
// against either.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
		OrderingKey string            `json:"orderingKey,omitempty"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// pushPublisher posts auth events straight to an HTTP endpoint for local development.
type pushPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewPushPublisher(endpoint string, logger *slog.Logger) service.AuthEventPublisher {
	return &pushPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: pushTimeout},
		logger:     logger.With(slog.String("endpoint", endpoint)),
	}
}

func (p *pushPublisher) PublishAuthEvent(ctx context.Context, event entity.AuthEvent) (err error) {
	defer func() { metrics.RecordAuthEvent(string(event.Kind), err) }()

	msg, err := newAuditMessage(event)
	if err != nil {
		return err
	}

	push := PushMessage{Subscription: localSubscription}
	push.Message.Data = base64.StdEncoding.EncodeToString(msg.data)
	push.Message.Attributes = msg.attributes
	push.Message.MessageID = uuid.NewString()
	push.Message.PublishTime = event.OccurredAt.UTC().Format(time.RFC3339Nano)
	push.Message.OrderingKey = msg.orderingKey

	body, err := json.Marshal(push)
	if err != nil {
		return errors.Wrap(err, "encode push message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "push auth event")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("audit endpoint answered %d", resp.StatusCode)
	}

	p.logger.Debug("Auth event pushed",
		slog.String("kind", string(event.Kind)),
		slog.String("message_id", push.Message.MessageID),
	)

	return nil
}

func (p *pushPublisher) Close() error {
	return nil
}

package pubsub

import (
	"context"
	"log/slog"

	"scooter/internal/domain/entity"
	"scooter/internal/domain/service"
	"scooter/internal/infra/metrics"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// topicPublisher writes auth events to a Google Cloud Pub/Sub topic with
// per-client ordering.
type topicPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewTopicPublisher connects to the audit topic and fails fast when it does not exist.
func NewTopicPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.AuthEventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "create pubsub client")
	}

	topic := "projects/" + projectID + "/topics/" + topicID
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topic}); err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "audit topic %s", topic)
	}

	publisher := client.Publisher(topicID)
	publisher.EnableMessageOrdering = true

	return &topicPublisher{
		client:    client,
		publisher: publisher,
		logger:    logger.With(slog.String("topic", topic)),
	}, nil
}

func (p *topicPublisher) PublishAuthEvent(ctx context.Context, event entity.AuthEvent) (err error) {
	defer func() { metrics.RecordAuthEvent(string(event.Kind), err) }()

	msg, err := newAuditMessage(event)
	if err != nil {
		return err
	}

	serverID, err := p.publisher.Publish(ctx, &pubsub.Message{
		Data:        msg.data,
		Attributes:  msg.attributes,
		OrderingKey: msg.orderingKey,
	}).Get(ctx)
	if err != nil {
		// a failed key is paused until resumed; later events of the client
		// would otherwise be rejected too
		p.publisher.ResumePublish(msg.orderingKey)

		return errors.Wrap(err, "publish auth event")
	}

	p.logger.Debug("Auth event published",
		slog.String("kind", string(event.Kind)),
		slog.String("server_id", serverID),
	)

	return nil
}

func (p *topicPublisher) Close() error {
	p.publisher.Stop()

	return errors.WithStack(p.client.Close())
}

package service

import (
	"context"
	"encoding/json"

	"campus-guide-be/internal/pkg/logger"
	"campus-guide-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IPublisherService puts engine events on the in-process bus. It satisfies
// engine.Notifier.
type IPublisherService interface {
	Notify(ctx context.Context, event events.Event)
}

type publisherService struct {
	topicName string
	publisher message.Publisher
	logger    logger.ILogger
}

func NewPublisherService(topicName string, publisher message.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
		logger:    log,
	}
}

func (ps *publisherService) Notify(ctx context.Context, event events.Event) {
	payload, err := json.Marshal(events.ToEnvelope(event))
	if err != nil {
		ps.logger.Error("PublisherService", "Failed to encode event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("type", event.EventType())
	msg.Metadata.Set("session_id", events.SessionID(event))

	if err := ps.publisher.Publish(ps.topicName, msg); err != nil {
		ps.logger.Error("PublisherService", "Failed to publish event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
	}
}

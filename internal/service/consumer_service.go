package service

import (
	"context"
	"encoding/json"

	"campus-guide-be/internal/mapper"
	"campus-guide-be/internal/metrics"
	"campus-guide-be/internal/pkg/logger"
	"campus-guide-be/internal/repository/contract"
	"campus-guide-be/internal/repository/memory"
	"campus-guide-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventPusher delivers events to the clients watching a session.
type EventPusher interface {
	Send(ctx context.Context, sessionID string, env events.Envelope)
}

// EventForwarder hands events to other services.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	pusher     EventPusher
	forwarder  EventForwarder                // nil without NATS
	eventRepo  contract.GuideEventRepository // nil without a database
	sessions   *memory.SessionRepository
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	pusher EventPusher,
	forwarder EventForwarder,
	eventRepo contract.GuideEventRepository,
	sessions *memory.SessionRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		pusher:     pusher,
		forwarder:  forwarder,
		eventRepo:  eventRepo,
		sessions:   sessions,
		logger:     log,
	}
}

// Consume subscribes and processes messages until ctx ends.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			cs.processMessage(ctx, msg)
		}
	}
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var env events.Envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal event", map[string]interface{}{"message_id": msg.UUID, "error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	event := env.Event()
	sessionID := events.SessionID(event)

	metrics.ObserveEvent(event)

	if sessionID != "" {
		cs.pusher.Send(ctx, sessionID, env)
	}

	if cs.forwarder != nil {
		if err := cs.forwarder.Publish(ctx, event); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to forward event to NATS", map[string]interface{}{"type": env.Type, "error": err.Error()})
		}
	}

	if cs.eventRepo != nil {
		cs.persist(ctx, event, sessionID)
	}

	msg.Ack()
}

// persist is best effort; the audit trail never blocks the live stream.
func (cs *consumerService) persist(ctx context.Context, event events.Event, sessionID string) {
	userID := ""
	if s, ok := cs.sessions.Peek(sessionID); ok {
		userID = s.UserID
	}

	row, err := mapper.ToEventModel(event, userID)
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to map event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		return
	}
	if err := cs.eventRepo.Create(ctx, row); err != nil {
		cs.logger.Error("ConsumerService", "Failed to store event", map[string]interface{}{"type": event.EventType(), "session_id": sessionID, "error": err.Error()})
	}
}

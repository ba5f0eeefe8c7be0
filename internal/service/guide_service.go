package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"campus-guide-be/internal/dto"
	"campus-guide-be/internal/mapper"
	"campus-guide-be/internal/metrics"
	"campus-guide-be/internal/pkg/logger"
	"campus-guide-be/internal/pkg/serverutils"
	"campus-guide-be/internal/repository/contract"
	"campus-guide-be/internal/repository/memory"
	"campus-guide-be/internal/repository/specification"
	"campus-guide-be/pkg/events"
	"campus-guide-be/pkg/guide/advisor"
	"campus-guide-be/pkg/guide/engine"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("campus-guide-be/service")

var (
	ErrSessionNotFound  = fmt.Errorf("guide session: %w", serverutils.ErrNotFound)
	ErrSessionForbidden = fmt.Errorf("guide session belongs to another user: %w", serverutils.ErrForbidden)
	ErrSessionBusy      = fmt.Errorf("guide session is still answering: %w", serverutils.ErrConflict)
	ErrAuditDisabled    = fmt.Errorf("event history needs a database: %w", serverutils.ErrNotFound)
)

type IGuideService interface {
	CreateSession(ctx context.Context, userID string) (*dto.SessionResponse, error)
	GetSnapshot(ctx context.Context, userID, sessionID string) (*engine.Snapshot, error)
	DeleteSession(ctx context.Context, userID, sessionID string) error
	SendMessage(ctx context.Context, userID, sessionID string, req *dto.SendMessageRequest) (*engine.Reply, error)
	TrackInteraction(ctx context.Context, userID, sessionID string, req *dto.TrackInteractionRequest) (*engine.Interaction, error)
	RecordActivity(ctx context.Context, userID, sessionID string, req *dto.RecordActivityRequest) (*engine.Activity, error)
	ListEvents(ctx context.Context, userID, sessionID string, req *dto.ListEventsQuery) (*dto.EventListResponse, error)
	Authorize(ctx context.Context, userID, sessionID string) error
}

type guideService struct {
	sessions  *memory.SessionRepository
	catalogs  ICatalogSource
	advisor   advisor.Advisor
	notifier  engine.Notifier
	eventRepo contract.GuideEventRepository // nil without a database
	options   engine.Options
	logger    logger.ILogger
}

func NewGuideService(
	sessions *memory.SessionRepository,
	catalogs ICatalogSource,
	adv advisor.Advisor,
	notifier engine.Notifier,
	eventRepo contract.GuideEventRepository,
	options engine.Options,
	messageWait time.Duration,
	log logger.ILogger,
) IGuideService {
	options.Logger = log
	options.Notifier = notifier
	options.TurnWait = messageWait
	return &guideService{
		sessions:  sessions,
		catalogs:  catalogs,
		advisor:   adv,
		notifier:  notifier,
		eventRepo: eventRepo,
		options:   options,
		logger:    log,
	}
}

func (s *guideService) CreateSession(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	provider, err := s.catalogs.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	session := &memory.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	session.Engine = engine.New(session.ID, provider, s.advisor, s.options)
	s.sessions.Save(session)
	metrics.ActiveSessions.Inc()

	s.logger.Info("GuideService", "Session created", map[string]interface{}{"session_id": session.ID, "user_id": userID})
	return &dto.SessionResponse{
		ID:        session.ID,
		CreatedAt: session.CreatedAt,
		Snapshot:  session.Engine.Snapshot(),
	}, nil
}

func (s *guideService) owned(userID, sessionID string) (*memory.Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, ErrSessionForbidden
	}
	return session, nil
}

func (s *guideService) Authorize(ctx context.Context, userID, sessionID string) error {
	_, err := s.owned(userID, sessionID)
	return err
}

func (s *guideService) GetSnapshot(ctx context.Context, userID, sessionID string) (*engine.Snapshot, error) {
	session, err := s.owned(userID, sessionID)
	if err != nil {
		return nil, err
	}
	snap := session.Engine.Snapshot()
	return &snap, nil
}

func (s *guideService) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if _, err := s.owned(userID, sessionID); err != nil {
		return err
	}
	s.sessions.Delete(sessionID)
	s.logger.Info("GuideService", "Session deleted", map[string]interface{}{"session_id": sessionID, "user_id": userID})
	return nil
}

func (s *guideService) SendMessage(ctx context.Context, userID, sessionID string, req *dto.SendMessageRequest) (*engine.Reply, error) {
	session, err := s.owned(userID, sessionID)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "guide.SendMessage")
	defer span.End()
	span.SetAttributes(attribute.String("guide.session_id", sessionID))

	reply, err := session.Engine.Submit(ctx, req.Text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, engine.ErrBusy) {
			return nil, fmt.Errorf("%w: %w", ErrSessionBusy, err)
		}
		return nil, err
	}
	span.SetAttributes(
		attribute.String("guide.source", string(reply.Source)),
		attribute.String("guide.kind", string(reply.Kind)),
	)
	return &reply, nil
}

func (s *guideService) TrackInteraction(ctx context.Context, userID, sessionID string, req *dto.TrackInteractionRequest) (*engine.Interaction, error) {
	session, err := s.owned(userID, sessionID)
	if err != nil {
		return nil, err
	}

	res, err := session.Engine.TrackInteraction(ctx, req.StepID)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *guideService) RecordActivity(ctx context.Context, userID, sessionID string, req *dto.RecordActivityRequest) (*engine.Activity, error) {
	session, err := s.owned(userID, sessionID)
	if err != nil {
		return nil, err
	}

	res := session.Engine.RecordActivity(ctx, req.Count)
	return &res, nil
}

func (s *guideService) ListEvents(ctx context.Context, userID, sessionID string, req *dto.ListEventsQuery) (*dto.EventListResponse, error) {
	if _, err := s.owned(userID, sessionID); err != nil {
		return nil, err
	}
	if s.eventRepo == nil {
		return nil, ErrAuditDisabled
	}

	limit := req.Limit
	if limit == 0 {
		limit = 100
	}
	rows, err := s.eventRepo.FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.ByEventTypes{Types: req.Types},
		specification.OrderBy{Field: "occurred_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}
	// newest rows win the limit; the response stays oldest first
	slices.Reverse(rows)

	out := &dto.EventListResponse{Events: make([]events.Envelope, 0, len(rows))}
	for _, row := range rows {
		out.Events = append(out.Events, mapper.ToEnvelope(row))
	}
	return out, nil
}

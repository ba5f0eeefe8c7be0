package dto

import (
	"time"

	"campus-guide-be/pkg/events"
	"campus-guide-be/pkg/guide/engine"
)

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

type TrackInteractionRequest struct {
	StepID string `json:"step_id" validate:"required,max=120"`
}

type RecordActivityRequest struct {
	Count int `json:"count" validate:"min=1,max=100000"`
}

type ListEventsQuery struct {
	Types []string `query:"type"`
	Limit int      `query:"limit" validate:"omitempty,min=1,max=500"`
}

type SessionResponse struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Snapshot  engine.Snapshot `json:"snapshot"`
}

type EventListResponse struct {
	Events []events.Envelope `json:"events"`
}

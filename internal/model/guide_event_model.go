package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GuideEvent is the audit trail of one engine event.
type GuideEvent struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID  string         `gorm:"type:varchar(64);not null;index:idx_guide_events_session_time,priority:1" json:"session_id"`
	UserID     string         `gorm:"type:varchar(64);index" json:"user_id"`
	Type       string         `gorm:"type:varchar(60);not null;index" json:"type"`
	Payload    datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	OccurredAt time.Time      `gorm:"not null;index:idx_guide_events_session_time,priority:2" json:"occurred_at"`
}

func (GuideEvent) TableName() string { return "guide_events" }

// All lists every model cmd/migrate creates.
func All() []interface{} {
	return []interface{}{
		&StudentRecord{},
		&CourseRecord{},
		&ExamRecord{},
		&AnnouncementRecord{},
		&FeeRecord{},
		&GuideEvent{},
	}
}

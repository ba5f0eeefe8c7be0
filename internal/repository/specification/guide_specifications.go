package specification

import (
	"gorm.io/gorm"
)

type ByUserID struct {
	UserID string
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// DeclaredOrder sorts per-student rows the way the registrar listed them.
type DeclaredOrder struct{}

func (DeclaredOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByEventTypes struct {
	Types []string
}

func (s ByEventTypes) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Types) == 0 {
		return db
	}
	return db.Where("type IN ?", s.Types)
}

package model

import (
	"time"

	"gorm.io/datatypes"
)

// InternalSplit is stored inside CourseRecord.Internals as jsonb.
type InternalSplit struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type StudentRecord struct {
	UserID     string    `gorm:"type:varchar(64);primaryKey" json:"user_id"`
	Name       string    `gorm:"type:varchar(120);not null" json:"name"`
	RollNumber string    `gorm:"type:varchar(40);uniqueIndex;not null" json:"roll_number"`
	Department string    `gorm:"type:varchar(120)" json:"department"`
	Semester   int       `json:"semester"`
	CGPA       float64   `gorm:"column:cgpa" json:"cgpa"`
	Attendance int       `json:"attendance"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (StudentRecord) TableName() string { return "students" }

// Position keeps the order the registrar declared; ordinals over courses
// and fees count in that order.
type CourseRecord struct {
	ID         uint                               `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string                             `gorm:"type:varchar(64);not null;index:idx_courses_user_position,priority:1" json:"user_id"`
	Position   int                                `gorm:"not null;index:idx_courses_user_position,priority:2" json:"position"`
	Code       string                             `gorm:"type:varchar(20);not null" json:"code"`
	Name       string                             `gorm:"type:varchar(200);not null" json:"name"`
	Credits    int                                `json:"credits"`
	Grade      string                             `gorm:"type:varchar(4)" json:"grade"`
	Attendance int                                `json:"attendance"`
	Internals  datatypes.JSONSlice[InternalSplit] `gorm:"type:jsonb" json:"internals"`
}

func (CourseRecord) TableName() string { return "courses" }

type ExamRecord struct {
	ID          uint                        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string                      `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Code        string                      `gorm:"type:varchar(20);not null" json:"code"`
	Subject     string                      `gorm:"type:varchar(200);not null" json:"subject"`
	Date        datatypes.Date              `gorm:"not null" json:"date"`
	Time        string                      `gorm:"type:varchar(20)" json:"time"`
	Location    string                      `gorm:"type:varchar(120)" json:"location"`
	Portions    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"portions"`
	Invigilator string                      `gorm:"type:varchar(120)" json:"invigilator"`
}

func (ExamRecord) TableName() string { return "exams" }

// AnnouncementRecord is campus wide; every student sees every row.
type AnnouncementRecord struct {
	ID        string         `gorm:"type:varchar(40);primaryKey" json:"id"`
	Title     string         `gorm:"type:varchar(200);not null" json:"title"`
	Content   string         `gorm:"type:text" json:"content"`
	Date      datatypes.Date `gorm:"not null;index" json:"date"`
	Category  string         `gorm:"type:varchar(40)" json:"category"`
	Priority  string         `gorm:"type:varchar(10);default:'Low'" json:"priority"`
	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AnnouncementRecord) TableName() string { return "announcements" }

type FeeRecord struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   string `gorm:"type:varchar(64);not null;index:idx_fees_user_position,priority:1" json:"user_id"`
	Position int    `gorm:"not null;index:idx_fees_user_position,priority:2" json:"position"`
	FeeID    string `gorm:"type:varchar(40);not null" json:"fee_id"`
	Title    string `gorm:"type:varchar(200);not null" json:"title"`
	Amount   int64  `gorm:"not null" json:"amount"`
	Status   string `gorm:"type:varchar(10);not null;index" json:"status"`
	Date     string `gorm:"type:varchar(20)" json:"date"`
}

func (FeeRecord) TableName() string { return "fees" }

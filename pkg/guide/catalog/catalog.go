package catalog

import (
	"context"
	"sort"
	"time"
)

// DateLayout is how record dates are written in feeds and replies.
const DateLayout = "2006-01-02"

type Kind string

const (
	KindCourse       Kind = "course"
	KindExam         Kind = "exam"
	KindAnnouncement Kind = "announcement"
	KindFee          Kind = "fee"
)

// Item is any record the assistant can point the user at.
type Item interface {
	ItemID() string
	SearchField() string
	Kind() Kind
}

type InternalSplit struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

type Course struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Credits    int             `json:"credits"`
	Grade      string          `json:"grade"`
	Attendance int             `json:"attendance"`
	Internals  []InternalSplit `json:"internals,omitempty"`
}

func (c Course) ItemID() string      { return c.Code }
func (c Course) SearchField() string { return c.Name }
func (c Course) Kind() Kind          { return KindCourse }

type Exam struct {
	Code        string    `json:"code"`
	Subject     string    `json:"subject"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Portions    []string  `json:"portions,omitempty"`
	Invigilator string    `json:"invigilator"`
}

func (e Exam) ItemID() string      { return e.Code }
func (e Exam) SearchField() string { return e.Subject }
func (e Exam) Kind() Kind          { return KindExam }

type Announcement struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Priority string    `json:"priority"`
}

func (a Announcement) ItemID() string      { return a.ID }
func (a Announcement) SearchField() string { return a.Title }
func (a Announcement) Kind() Kind          { return KindAnnouncement }

type FeeItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
	Date   string `json:"date"`
}

func (f FeeItem) ItemID() string      { return f.ID }
func (f FeeItem) SearchField() string { return f.Title }
func (f FeeItem) Kind() Kind          { return KindFee }

type Student struct {
	Name       string  `json:"name"`
	RollNumber string  `json:"roll_number"`
	Department string  `json:"department"`
	Semester   int     `json:"semester"`
	CGPA       float64 `json:"cgpa"`
	Attendance int     `json:"attendance"`
}

// Catalog is a read-only snapshot of the records one student can see.
// Lists keep the order the feed declared.
type Catalog struct {
	Student       Student        `json:"student"`
	Courses       []Course       `json:"courses"`
	Exams         []Exam         `json:"exams"`
	Announcements []Announcement `json:"announcements"`
	Fees          []FeeItem      `json:"fees"`
}

// ExamsByDate returns the exams ordered soonest first.
func (c *Catalog) ExamsByDate() []Exam {
	out := make([]Exam, len(c.Exams))
	copy(out, c.Exams)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// AnnouncementsByRecency returns the announcements ordered newest first.
func (c *Catalog) AnnouncementsByRecency() []Announcement {
	out := make([]Announcement, len(c.Announcements))
	copy(out, c.Announcements)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Provider supplies the catalog for a student. Implementations may hit a
// database, so callers pass a context.
type Provider interface {
	Catalog(ctx context.Context) (*Catalog, error)
}

// Static serves a fixed catalog.
type Static struct {
	catalog *Catalog
}

var _ Provider = (*Static)(nil)

func NewStatic(c *Catalog) *Static {
	return &Static{catalog: c}
}

func (s *Static) Catalog(ctx context.Context) (*Catalog, error) {
	return s.catalog, nil
}

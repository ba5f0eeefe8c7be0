package mapper

import (
	"encoding/json"
	"time"

	"campus-guide-be/internal/model"
	"campus-guide-be/pkg/events"
	"campus-guide-be/pkg/guide/catalog"

	"gorm.io/datatypes"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) ToStudent(s *model.StudentRecord) *catalog.Student {
	if s == nil {
		return nil
	}
	return &catalog.Student{
		Name:       s.Name,
		RollNumber: s.RollNumber,
		Department: s.Department,
		Semester:   s.Semester,
		CGPA:       s.CGPA,
		Attendance: s.Attendance,
	}
}

func (m *CatalogMapper) ToStudentModel(userID string, s catalog.Student) *model.StudentRecord {
	return &model.StudentRecord{
		UserID:     userID,
		Name:       s.Name,
		RollNumber: s.RollNumber,
		Department: s.Department,
		Semester:   s.Semester,
		CGPA:       s.CGPA,
		Attendance: s.Attendance,
	}
}

func (m *CatalogMapper) ToCourses(records []*model.CourseRecord) []catalog.Course {
	out := make([]catalog.Course, 0, len(records))
	for _, r := range records {
		splits := make([]catalog.InternalSplit, 0, len(r.Internals))
		for _, s := range r.Internals {
			splits = append(splits, catalog.InternalSplit{Name: s.Name, Value: s.Value})
		}
		out = append(out, catalog.Course{
			Code:       r.Code,
			Name:       r.Name,
			Credits:    r.Credits,
			Grade:      r.Grade,
			Attendance: r.Attendance,
			Internals:  splits,
		})
	}
	return out
}

func (m *CatalogMapper) ToCourseModels(userID string, courses []catalog.Course) []*model.CourseRecord {
	out := make([]*model.CourseRecord, 0, len(courses))
	for i, c := range courses {
		splits := make(datatypes.JSONSlice[model.InternalSplit], 0, len(c.Internals))
		for _, s := range c.Internals {
			splits = append(splits, model.InternalSplit{Name: s.Name, Value: s.Value})
		}
		out = append(out, &model.CourseRecord{
			UserID:     userID,
			Position:   i,
			Code:       c.Code,
			Name:       c.Name,
			Credits:    c.Credits,
			Grade:      c.Grade,
			Attendance: c.Attendance,
			Internals:  splits,
		})
	}
	return out
}

func (m *CatalogMapper) ToExams(records []*model.ExamRecord) []catalog.Exam {
	out := make([]catalog.Exam, 0, len(records))
	for _, r := range records {
		out = append(out, catalog.Exam{
			Code:        r.Code,
			Subject:     r.Subject,
			Date:        time.Time(r.Date),
			Time:        r.Time,
			Location:    r.Location,
			Portions:    append([]string(nil), r.Portions...),
			Invigilator: r.Invigilator,
		})
	}
	return out
}

func (m *CatalogMapper) ToExamModels(userID string, exams []catalog.Exam) []*model.ExamRecord {
	out := make([]*model.ExamRecord, 0, len(exams))
	for _, e := range exams {
		out = append(out, &model.ExamRecord{
			UserID:      userID,
			Code:        e.Code,
			Subject:     e.Subject,
			Date:        datatypes.Date(e.Date),
			Time:        e.Time,
			Location:    e.Location,
			Portions:    datatypes.JSONSlice[string](e.Portions),
			Invigilator: e.Invigilator,
		})
	}
	return out
}

func (m *CatalogMapper) ToAnnouncements(records []*model.AnnouncementRecord) []catalog.Announcement {
	out := make([]catalog.Announcement, 0, len(records))
	for _, r := range records {
		out = append(out, catalog.Announcement{
			ID:       r.ID,
			Title:    r.Title,
			Content:  r.Content,
			Date:     time.Time(r.Date),
			Category: r.Category,
			Priority: r.Priority,
		})
	}
	return out
}

func (m *CatalogMapper) ToAnnouncementModels(items []catalog.Announcement) []*model.AnnouncementRecord {
	out := make([]*model.AnnouncementRecord, 0, len(items))
	for _, a := range items {
		out = append(out, &model.AnnouncementRecord{
			ID:       a.ID,
			Title:    a.Title,
			Content:  a.Content,
			Date:     datatypes.Date(a.Date),
			Category: a.Category,
			Priority: a.Priority,
		})
	}
	return out
}

func (m *CatalogMapper) ToFees(records []*model.FeeRecord) []catalog.FeeItem {
	out := make([]catalog.FeeItem, 0, len(records))
	for _, r := range records {
		out = append(out, catalog.FeeItem{
			ID:     r.FeeID,
			Title:  r.Title,
			Amount: r.Amount,
			Status: r.Status,
			Date:   r.Date,
		})
	}
	return out
}

func (m *CatalogMapper) ToFeeModels(userID string, fees []catalog.FeeItem) []*model.FeeRecord {
	out := make([]*model.FeeRecord, 0, len(fees))
	for i, f := range fees {
		out = append(out, &model.FeeRecord{
			UserID:   userID,
			Position: i,
			FeeID:    f.ID,
			Title:    f.Title,
			Amount:   f.Amount,
			Status:   f.Status,
			Date:     f.Date,
		})
	}
	return out
}

// ToEventModel flattens an engine event for the audit table.
func ToEventModel(e events.Event, userID string) (*model.GuideEvent, error) {
	payload, err := json.Marshal(e.Payload())
	if err != nil {
		return nil, err
	}
	return &model.GuideEvent{
		SessionID:  events.SessionID(e),
		UserID:     userID,
		Type:       e.EventType(),
		Payload:    datatypes.JSON(payload),
		OccurredAt: e.Timestamp(),
	}, nil
}

func ToEnvelope(m *model.GuideEvent) events.Envelope {
	env := events.Envelope{Type: m.Type, OccurredAt: m.OccurredAt}
	_ = json.Unmarshal(m.Payload, &env.Data)
	return env
}

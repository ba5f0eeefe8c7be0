package intent

import (
	"fmt"

	"campus-guide-be/pkg/guide/catalog"
	"campus-guide-be/pkg/guide/fuzzy"
	"campus-guide-be/pkg/guide/nav"
	"campus-guide-be/pkg/guide/ordinal"
	"campus-guide-be/pkg/guide/query"
	"campus-guide-be/pkg/guide/step"
)

type Kind string

const (
	KindDirect     Kind = "direct"
	KindClarify    Kind = "clarify"
	KindMiss       Kind = "miss" // ordinal pointed past the end of the list
	KindUnresolved Kind = "unresolved"
)

type Bucket string

const (
	BucketNone          Bucket = ""
	BucketProfile       Bucket = "profile"
	BucketFinance       Bucket = "finance"
	BucketExam          Bucket = "exam"
	BucketMarks         Bucket = "marks"
	BucketAnnouncements Bucket = "announcements"
)

const (
	msgProfile       = "Let's update your profile. First, click on the 'Profile' tab."
	msgFinance       = "I'll help you with that payment%s. First, click on the 'Finance' tab."
	msgExamDirect    = "Found it. Your %s exam is on %s. Click 'Exam Schedule' to see more."
	msgExamMiss      = "I couldn't find an exam at that position. You only have %d scheduled exams."
	msgExamClarify   = "Are you searching for the \"%s\" exam?"
	msgMarksDirect   = "Navigating to %s marks. First, click on 'Academics'."
	msgMarksMiss     = "Invalid course selection. You have %d registered courses."
	msgMarksClarify  = "Are you searching for marks/internals in \"%s\"?"
	msgNoticeDirect  = "Navigating to that circular. Click 'Announcements' to view."
	msgNoticeMiss    = "No announcement found at that position. You only have %d announcements."
	msgNoticeClarify = "Are you searching for the notice titled \"%s\"?"
)

// Pending is a fuzzy hit waiting for the user to confirm it.
type Pending struct {
	Query       string          `json:"query"`
	Candidate   catalog.Item    `json:"candidate"`
	Kind        catalog.Kind    `json:"kind"`
	Path        step.Path       `json:"path"`
	Destination nav.Destination `json:"destination"`
	Question    string          `json:"question"`
}

// Resolution is the outcome of classifying one message.
type Resolution struct {
	Kind        Kind
	Bucket      Bucket
	Path        step.Path
	Destination nav.Destination
	Message     string
	Pending     *Pending
}

type Classifier struct {
	vocab Vocabulary
}

func NewClassifier(vocab Vocabulary) *Classifier {
	return &Classifier{vocab: vocab.Merge(DefaultVocabulary())}
}

func (c *Classifier) Vocabulary() Vocabulary {
	return c.vocab
}

// Classify runs the keyword buckets in priority order. The first bucket
// whose keywords appear in the query owns it; later buckets are never tried.
func (c *Classifier) Classify(raw string, cat *catalog.Catalog) Resolution {
	q := query.Normalize(raw)
	if q == "" {
		return Resolution{Kind: KindUnresolved}
	}
	if cat == nil {
		cat = &catalog.Catalog{}
	}

	switch {
	case query.ContainsAny(q, c.vocab.Profile):
		return c.profile()
	case query.ContainsAny(q, c.vocab.Finance):
		return c.finance(q)
	case query.ContainsAny(q, c.vocab.Exam):
		return c.exam(q, cat)
	case query.ContainsAny(q, c.vocab.Marks):
		return c.marks(q, cat)
	case query.ContainsAny(q, c.vocab.Announcements):
		return c.announcements(q, cat)
	}
	return Resolution{Kind: KindUnresolved}
}

func (c *Classifier) profile() Resolution {
	return Resolution{
		Kind:        KindDirect,
		Bucket:      BucketProfile,
		Path:        step.Path{step.Tab(nav.TabProfile), step.Button("edit-profile")},
		Destination: nav.Destination{Tab: nav.TabProfile, SubView: nav.SubViewEdit},
		Message:     msgProfile,
	}
}

func (c *Classifier) finance(q string) Resolution {
	path := step.Path{step.Tab(nav.TabFinance), step.Button("pay-outstanding")}
	dest := nav.Destination{Tab: nav.TabFinance, SubView: nav.SubViewModeSelection}
	suffix := ""

	for _, mode := range c.vocab.PaymentModes {
		if query.ContainsAny(q, mode.Keywords) {
			path = append(path, step.Button(mode.Button))
			dest.SubView = nav.SubViewPaymentDetails
			dest.SelectedItem = mode.Name
			suffix = mode.Suffix
			break
		}
	}

	return Resolution{
		Kind:        KindDirect,
		Bucket:      BucketFinance,
		Path:        path,
		Destination: dest,
		Message:     fmt.Sprintf(msgFinance, suffix),
	}
}

func (c *Classifier) exam(q string, cat *catalog.Catalog) Resolution {
	exams := cat.ExamsByDate()
	build := func(e catalog.Exam) (step.Path, nav.Destination) {
		return step.Path{step.Tab(nav.TabExamSchedule), step.Button("view-exam-" + e.Code)},
			nav.Destination{Tab: nav.TabExamSchedule, SubView: nav.SubViewDetails, SelectedItem: e.Code}
	}

	if o, ok := c.vocab.Ordinals.Parse(q); ok {
		target, found := ordinal.Resolve(exams, o)
		if !found {
			return Resolution{Kind: KindMiss, Bucket: BucketExam, Message: fmt.Sprintf(msgExamMiss, len(exams))}
		}
		path, dest := build(target)
		return Resolution{
			Kind:        KindDirect,
			Bucket:      BucketExam,
			Path:        path,
			Destination: dest,
			Message:     fmt.Sprintf(msgExamDirect, target.Subject, target.Date.Format(catalog.DateLayout)),
		}
	}

	match, ok := fuzzy.Match(query.Strip(q, c.vocab.Exam), cat.Exams)
	if !ok {
		return Resolution{Kind: KindUnresolved, Bucket: BucketExam}
	}
	path, dest := build(match)
	return clarify(BucketExam, q, match, path, dest, fmt.Sprintf(msgExamClarify, match.Subject))
}

func (c *Classifier) marks(q string, cat *catalog.Catalog) Resolution {
	build := func(course catalog.Course) (step.Path, nav.Destination) {
		return step.Path{step.Tab(nav.TabAcademics), step.Button("view-marks-" + course.Code)},
			nav.Destination{Tab: nav.TabAcademics, SubView: nav.SubViewInternals, SelectedItem: course.Code}
	}

	if o, ok := c.vocab.Ordinals.Parse(q); ok {
		target, found := ordinal.Resolve(cat.Courses, o)
		if !found {
			return Resolution{Kind: KindMiss, Bucket: BucketMarks, Message: fmt.Sprintf(msgMarksMiss, len(cat.Courses))}
		}
		path, dest := build(target)
		return Resolution{
			Kind:        KindDirect,
			Bucket:      BucketMarks,
			Path:        path,
			Destination: dest,
			Message:     fmt.Sprintf(msgMarksDirect, target.Name),
		}
	}

	match, ok := fuzzy.Match(query.Strip(q, c.vocab.Marks), cat.Courses)
	if !ok {
		return Resolution{Kind: KindUnresolved, Bucket: BucketMarks}
	}
	path, dest := build(match)
	return clarify(BucketMarks, q, match, path, dest, fmt.Sprintf(msgMarksClarify, match.Name))
}

func (c *Classifier) announcements(q string, cat *catalog.Catalog) Resolution {
	notices := cat.AnnouncementsByRecency()
	build := func(a catalog.Announcement) (step.Path, nav.Destination) {
		return step.Path{step.Tab(nav.TabAnnouncements), step.Card("announcement-" + a.ID)},
			nav.Destination{Tab: nav.TabAnnouncements, SelectedItem: a.ID}
	}

	if o, ok := c.vocab.Ordinals.Parse(q); ok {
		target, found := ordinal.Resolve(notices, o)
		if !found {
			return Resolution{Kind: KindMiss, Bucket: BucketAnnouncements, Message: fmt.Sprintf(msgNoticeMiss, len(notices))}
		}
		path, dest := build(target)
		return Resolution{
			Kind:        KindDirect,
			Bucket:      BucketAnnouncements,
			Path:        path,
			Destination: dest,
			Message:     msgNoticeDirect,
		}
	}

	match, ok := fuzzy.Match(query.Strip(q, c.vocab.Announcements), cat.Announcements)
	if !ok {
		return Resolution{Kind: KindUnresolved, Bucket: BucketAnnouncements}
	}
	path, dest := build(match)
	return clarify(BucketAnnouncements, q, match, path, dest, fmt.Sprintf(msgNoticeClarify, match.Title))
}

func clarify(b Bucket, q string, item catalog.Item, path step.Path, dest nav.Destination, question string) Resolution {
	return Resolution{
		Kind:   KindClarify,
		Bucket: b,
		Pending: &Pending{
			Query:       q,
			Candidate:   item,
			Kind:        item.Kind(),
			Path:        path,
			Destination: dest,
			Question:    question,
		},
		Message: question,
	}
}

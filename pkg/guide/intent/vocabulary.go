package intent

import (
	"errors"
	"fmt"

	"campus-guide-be/pkg/guide/ordinal"
)

// PaymentMode extends the finance path with one more button.
type PaymentMode struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Button   string   `yaml:"button"`
	Suffix   string   `yaml:"suffix"`
}

// Vocabulary holds the keyword buckets. Keywords are lower-case and matched
// as substrings of the normalized query.
type Vocabulary struct {
	Profile       []string      `yaml:"profile"`
	Finance       []string      `yaml:"finance"`
	Exam          []string      `yaml:"exam"`
	Marks         []string      `yaml:"marks"`
	Announcements []string      `yaml:"announcements"`
	PaymentModes  []PaymentMode `yaml:"payment_modes"`
	Ordinals      ordinal.Table `yaml:"ordinals"`
}

var ErrEmptyBucket = errors.New("keyword bucket is empty")

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Profile: []string{
			"edit profile", "update profile", "edit my profile", "update my profile",
			"change my email", "change email", "change my phone", "change phone",
			"change my address", "change address", "update my details", "personal info",
		},
		Finance:       []string{"pay", "fee", "due", "debt", "money", "billing", "cash", "upi", "card"},
		Exam:          []string{"exam", "test", "scheduled", "timetable"},
		Marks:         []string{"mark", "internal", "grade", "percentage", "how did i do", "result"},
		Announcements: []string{"circular", "notice", "announcement", "news"},
		PaymentModes: []PaymentMode{
			{Name: "person", Keywords: []string{"person", "cash", "counter", "offline"}, Button: "mode-person", Suffix: " for In-Person payment"},
			{Name: "upi", Keywords: []string{"upi", "phonepe", "gpay"}, Button: "mode-upi", Suffix: " via UPI"},
			{Name: "card", Keywords: []string{"card", "debit", "credit"}, Button: "mode-card", Suffix: " via Card"},
			{Name: "netbanking", Keywords: []string{"net", "banking", "internet"}, Button: "mode-netbanking", Suffix: " via Net Banking"},
		},
		Ordinals: ordinal.DefaultTable(),
	}
}

// Merge fills every empty field of v from fallback.
func (v Vocabulary) Merge(fallback Vocabulary) Vocabulary {
	if len(v.Profile) == 0 {
		v.Profile = fallback.Profile
	}
	if len(v.Finance) == 0 {
		v.Finance = fallback.Finance
	}
	if len(v.Exam) == 0 {
		v.Exam = fallback.Exam
	}
	if len(v.Marks) == 0 {
		v.Marks = fallback.Marks
	}
	if len(v.Announcements) == 0 {
		v.Announcements = fallback.Announcements
	}
	if len(v.PaymentModes) == 0 {
		v.PaymentModes = fallback.PaymentModes
	}
	if len(v.Ordinals) == 0 {
		v.Ordinals = fallback.Ordinals
	}
	return v
}

func (v Vocabulary) Validate() error {
	buckets := map[Bucket][]string{
		BucketProfile:       v.Profile,
		BucketFinance:       v.Finance,
		BucketExam:          v.Exam,
		BucketMarks:         v.Marks,
		BucketAnnouncements: v.Announcements,
	}
	for name, words := range buckets {
		if len(words) == 0 {
			return fmt.Errorf("%s: %w", name, ErrEmptyBucket)
		}
	}
	for _, m := range v.PaymentModes {
		if m.Button == "" || len(m.Keywords) == 0 {
			return fmt.Errorf("payment mode %q: %w", m.Name, ErrEmptyBucket)
		}
	}
	return v.Ordinals.Validate()
}

package mapper

import (
	"testing"

	"campus-guide-be/pkg/events"
	"campus-guide-be/pkg/guide/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRoundTripKeepsDeclaredOrder(t *testing.T) {
	m := NewCatalogMapper()
	sample := catalog.Sample()

	courseModels := m.ToCourseModels("u1", sample.Courses)
	require.Len(t, courseModels, len(sample.Courses))
	assert.Equal(t, 9, courseModels[9].Position)
	assert.Equal(t, "u1", courseModels[0].UserID)
	assert.Equal(t, sample.Courses, m.ToCourses(courseModels))

	exams := m.ToExams(m.ToExamModels("u1", sample.Exams))
	assert.Equal(t, sample.Exams[2].Code, exams[2].Code)
	assert.True(t, sample.Exams[2].Date.Equal(exams[2].Date))
	assert.Equal(t, sample.Exams[2].Portions, exams[2].Portions)

	fees := m.ToFees(m.ToFeeModels("u1", sample.Fees))
	assert.Equal(t, sample.Fees, fees)

	notices := m.ToAnnouncements(m.ToAnnouncementModels(sample.Announcements))
	assert.Equal(t, sample.Announcements[0].Title, notices[0].Title)

	student := m.ToStudent(m.ToStudentModel("u1", sample.Student))
	assert.Equal(t, sample.Student, *student)
	assert.Nil(t, m.ToStudent(nil))
}

func TestEventModelRoundTrip(t *testing.T) {
	ev := events.New("GUIDE_PATH_STARTED", map[string]interface{}{"session_id": "s9", "length": 2})

	row, err := ToEventModel(ev, "u1")
	require.NoError(t, err)
	assert.Equal(t, "s9", row.SessionID)
	assert.Equal(t, "GUIDE_PATH_STARTED", row.Type)

	env := ToEnvelope(row)
	assert.Equal(t, "GUIDE_PATH_STARTED", env.Type)
	assert.Equal(t, float64(2), env.Data["length"])
}

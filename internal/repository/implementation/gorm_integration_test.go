package implementation

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"campus-guide-be/internal/model"
	"campus-guide-be/internal/repository/specification"
	"campus-guide-be/pkg/database"
	"campus-guide-be/pkg/guide/catalog"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func integrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func TestCatalogRepositoryRoundTrip(t *testing.T) {
	db := integrationDB(t)
	repo := NewCatalogRepository(db)
	ctx := context.Background()
	userID := "it-" + uuid.NewString()
	sample := catalog.Sample()

	require.NoError(t, repo.ReplaceStudentCatalog(ctx, userID, sample))
	// seeding twice must not duplicate rows
	require.NoError(t, repo.ReplaceStudentCatalog(ctx, userID, sample))

	t.Run("student", func(t *testing.T) {
		student, err := repo.FindStudent(ctx, specification.ByUserID{UserID: userID})
		require.NoError(t, err)
		require.NotNil(t, student)
		assert.Equal(t, sample.Student.Name, student.Name)
	})

	t.Run("courses keep declared order", func(t *testing.T) {
		courses, err := repo.FindCourses(ctx, specification.ByUserID{UserID: userID}, specification.DeclaredOrder{})
		require.NoError(t, err)
		require.Len(t, courses, len(sample.Courses))
		for i := range courses {
			assert.Equal(t, sample.Courses[i].Code, courses[i].Code)
		}
	})

	t.Run("exams by date", func(t *testing.T) {
		exams, err := repo.FindExams(ctx, specification.ByUserID{UserID: userID}, specification.OrderBy{Field: "date"})
		require.NoError(t, err)
		require.Len(t, exams, len(sample.Exams))
		for i := 1; i < len(exams); i++ {
			assert.False(t, exams[i].Date.Before(exams[i-1].Date))
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		student, err := repo.FindStudent(ctx, specification.ByUserID{UserID: "missing-" + uuid.NewString()})
		assert.NoError(t, err)
		assert.Nil(t, student)
	})
}

func TestGuideEventRepositoryFilters(t *testing.T) {
	db := integrationDB(t)
	repo := NewGuideEventRepository(db)
	ctx := context.Background()
	sessionID := uuid.NewString()
	now := time.Now()

	for i, typ := range []string{"GUIDE_PATH_STARTED", "GUIDE_DEVIATION", "GUIDE_PATH_COMPLETED"} {
		require.NoError(t, repo.Create(ctx, &model.GuideEvent{
			SessionID:  sessionID,
			UserID:     "it-user",
			Type:       typ,
			Payload:    datatypes.JSON(`{"session_id":"` + sessionID + `"}`),
			OccurredAt: now.Add(time.Duration(i) * time.Second),
		}))
	}

	rows, err := repo.FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.ByEventTypes{Types: []string{"GUIDE_DEVIATION", "GUIDE_PATH_COMPLETED"}},
		specification.OrderBy{Field: "occurred_at"},
	)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "GUIDE_DEVIATION", rows[0].Type)
}

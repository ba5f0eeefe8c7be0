package contract

import (
	"context"

	"campus-guide-be/internal/repository/specification"
	"campus-guide-be/pkg/guide/catalog"
)

type CatalogRepository interface {
	FindStudent(ctx context.Context, specs ...specification.Specification) (*catalog.Student, error)
	FindCourses(ctx context.Context, specs ...specification.Specification) ([]catalog.Course, error)
	FindExams(ctx context.Context, specs ...specification.Specification) ([]catalog.Exam, error)
	FindAnnouncements(ctx context.Context, specs ...specification.Specification) ([]catalog.Announcement, error)
	FindFees(ctx context.Context, specs ...specification.Specification) ([]catalog.FeeItem, error)
	// ReplaceStudentCatalog swaps every per-student row of userID in one
	// transaction. Announcements are upserted.
	ReplaceStudentCatalog(ctx context.Context, userID string, c *catalog.Catalog) error
}

package implementation

import (
	"context"
	"errors"

	"campus-guide-be/internal/mapper"
	"campus-guide-be/internal/model"
	"campus-guide-be/internal/repository/contract"
	"campus-guide-be/internal/repository/specification"
	"campus-guide-be/pkg/guide/catalog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewCatalogRepository(db *gorm.DB) contract.CatalogRepository {
	return &CatalogRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *CatalogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CatalogRepositoryImpl) FindStudent(ctx context.Context, specs ...specification.Specification) (*catalog.Student, error) {
	var m model.StudentRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToStudent(&m), nil
}

func (r *CatalogRepositoryImpl) FindCourses(ctx context.Context, specs ...specification.Specification) ([]catalog.Course, error) {
	var models []*model.CourseRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToCourses(models), nil
}

func (r *CatalogRepositoryImpl) FindExams(ctx context.Context, specs ...specification.Specification) ([]catalog.Exam, error) {
	var models []*model.ExamRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToExams(models), nil
}

func (r *CatalogRepositoryImpl) FindAnnouncements(ctx context.Context, specs ...specification.Specification) ([]catalog.Announcement, error) {
	var models []*model.AnnouncementRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToAnnouncements(models), nil
}

func (r *CatalogRepositoryImpl) FindFees(ctx context.Context, specs ...specification.Specification) ([]catalog.FeeItem, error) {
	var models []*model.FeeRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToFees(models), nil
}

func (r *CatalogRepositoryImpl) ReplaceStudentCatalog(ctx context.Context, userID string, c *catalog.Catalog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(r.mapper.ToStudentModel(userID, c.Student)).Error; err != nil {
			return err
		}

		for _, stale := range []interface{}{&model.CourseRecord{}, &model.ExamRecord{}, &model.FeeRecord{}} {
			if err := tx.Where("user_id = ?", userID).Delete(stale).Error; err != nil {
				return err
			}
		}

		if courses := r.mapper.ToCourseModels(userID, c.Courses); len(courses) > 0 {
			if err := tx.Create(&courses).Error; err != nil {
				return err
			}
		}
		if exams := r.mapper.ToExamModels(userID, c.Exams); len(exams) > 0 {
			if err := tx.Create(&exams).Error; err != nil {
				return err
			}
		}
		if fees := r.mapper.ToFeeModels(userID, c.Fees); len(fees) > 0 {
			if err := tx.Create(&fees).Error; err != nil {
				return err
			}
		}
		if notices := r.mapper.ToAnnouncementModels(c.Announcements); len(notices) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&notices).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

package implementation

import (
	"context"

	"campus-guide-be/internal/model"
	"campus-guide-be/internal/repository/contract"
	"campus-guide-be/internal/repository/specification"

	"gorm.io/gorm"
)

type GuideEventRepositoryImpl struct {
	db *gorm.DB
}

func NewGuideEventRepository(db *gorm.DB) contract.GuideEventRepository {
	return &GuideEventRepositoryImpl{db: db}
}

func (r *GuideEventRepositoryImpl) Create(ctx context.Context, event *model.GuideEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *GuideEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.GuideEvent, error) {
	var models []*model.GuideEvent
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

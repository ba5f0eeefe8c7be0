package contract

import (
	"context"

	"campus-guide-be/internal/model"
	"campus-guide-be/internal/repository/specification"
)

type GuideEventRepository interface {
	Create(ctx context.Context, event *model.GuideEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.GuideEvent, error)
}

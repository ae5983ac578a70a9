package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, categoryID int64) (model.Category, error)
	//大文字小文字を区別しない名前検索
	FindByName(ctx context.Context, name string) (model.Category, error)
	Create(ctx context.Context, category model.Category) (model.Category, error)
	Update(ctx context.Context, category model.Category) error
	Delete(ctx context.Context, categoryID int64) error
}

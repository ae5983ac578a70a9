package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type TagRepository interface {
	List(ctx context.Context) ([]model.Tag, error)
	FindByID(ctx context.Context, tagID int64) (model.Tag, error)
	//存在する名前だけ返す（無い名前はスキップ）
	FindByNames(ctx context.Context, names []string) ([]model.Tag, error)
	Create(ctx context.Context, tag model.Tag) (model.Tag, error)
	Update(ctx context.Context, tag model.Tag) error
	Delete(ctx context.Context, tagID int64) error
}

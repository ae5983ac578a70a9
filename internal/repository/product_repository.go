package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 一覧検索（skip/limitは原典のクエリパラメータに合わせる）
type ProductListQuery struct {
	Skip       int
	Limit      int
	Q          string
	CategoryID *int64
	TagIDs     []int64
}

// 商品の永続化（保存・取得）だけを約束
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, productID int64) (model.Product, error)
	//カート更新・checkoutの読み通し用
	FindByIDs(ctx context.Context, productIDs []int64) ([]model.Product, error)

	Create(ctx context.Context, product model.Product) (model.Product, error)
	Update(ctx context.Context, product model.Product) error
	SoftDelete(ctx context.Context, productID int64) error
}

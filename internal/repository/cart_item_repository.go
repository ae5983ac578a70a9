package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartItemRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)

	//checkout用。行ロック（FOR UPDATE）を取って読む。
	//同一ユーザーの同時checkoutはここで直列化される
	ListByUserIDForUpdate(ctx context.Context, userID int64) ([]model.CartItem, error)

	//カートを丸ごと入れ替える。(user, product)につき1行のupsert
	ReplaceForUser(ctx context.Context, userID int64, items []model.CartItem) error

	DeleteAllByUserID(ctx context.Context, userID int64) error
}

package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// ユーザーの保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	//logout用。トークンのバージョンを+1
	IncrementTokenVersion(ctx context.Context, userID int64) error
}

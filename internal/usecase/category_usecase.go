package usecase

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
}

func NewCategoryUsecase(categories repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories}
}

func validateCategoryName(name string) map[string]string {
	if l := len(strings.TrimSpace(name)); l < 3 || l > 20 {
		return map[string]string{"name": "name must be between 3 and 20 characters"}
	}
	return nil
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	list, err := u.categories.List(ctx)
	if err != nil {
		return nil, errInternal()
	}
	return list, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, name string) (model.Category, error) {
	if fields := validateCategoryName(name); fields != nil {
		return model.Category{}, NewValidationError("validation error", fields)
	}

	name = strings.TrimSpace(name)

	//同名（大文字小文字無視）は弾く
	if _, err := u.categories.FindByName(ctx, name); err == nil {
		return model.Category{}, NewHTTPError(http.StatusConflict, "category already exists")
	} else if err != repo.ErrNotFound {
		return model.Category{}, errInternal()
	}

	created, err := u.categories.Create(ctx, model.Category{Name: name})
	if err != nil {
		return model.Category{}, errInternal()
	}
	return created, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, categoryID int64, name string) (model.Category, error) {
	if categoryID <= 0 {
		return model.Category{}, NewValidationError("validation error", map[string]string{
			"id": "id must be a positive integer",
		})
	}
	if fields := validateCategoryName(name); fields != nil {
		return model.Category{}, NewValidationError("validation error", fields)
	}

	current, err := u.categories.FindByID(ctx, categoryID)
	if err == repo.ErrNotFound {
		return model.Category{}, errNotFound("category")
	}
	if err != nil {
		return model.Category{}, errInternal()
	}

	current.Name = strings.TrimSpace(name)
	if err := u.categories.Update(ctx, current); err != nil {
		return model.Category{}, errInternal()
	}
	return current, nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, categoryID int64) error {
	if categoryID <= 0 {
		return NewValidationError("validation error", map[string]string{
			"id": "id must be a positive integer",
		})
	}
	if err := u.categories.Delete(ctx, categoryID); err != nil {
		if err == repo.ErrNotFound {
			return errNotFound("category")
		}
		return errInternal()
	}
	return nil
}

package usecase

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type TagUsecase struct {
	tags repo.TagRepository
}

func NewTagUsecase(tags repo.TagRepository) *TagUsecase {
	return &TagUsecase{tags: tags}
}

func validateTagName(name string) map[string]string {
	if l := len(strings.TrimSpace(name)); l < 1 || l > 20 {
		return map[string]string{"name": "name must be between 1 and 20 characters"}
	}
	return nil
}

func (u *TagUsecase) List(ctx context.Context) ([]model.Tag, error) {
	list, err := u.tags.List(ctx)
	if err != nil {
		return nil, errInternal()
	}
	return list, nil
}

func (u *TagUsecase) Create(ctx context.Context, name string) (model.Tag, error) {
	if fields := validateTagName(name); fields != nil {
		return model.Tag{}, NewValidationError("validation error", fields)
	}

	name = strings.TrimSpace(name)

	if found, err := u.tags.FindByNames(ctx, []string{name}); err != nil {
		return model.Tag{}, errInternal()
	} else if len(found) > 0 {
		return model.Tag{}, NewHTTPError(http.StatusConflict, "tag already exists")
	}

	created, err := u.tags.Create(ctx, model.Tag{Name: name})
	if err != nil {
		return model.Tag{}, errInternal()
	}
	return created, nil
}

func (u *TagUsecase) Update(ctx context.Context, tagID int64, name string) (model.Tag, error) {
	if tagID <= 0 {
		return model.Tag{}, NewValidationError("validation error", map[string]string{
			"id": "id must be a positive integer",
		})
	}
	if fields := validateTagName(name); fields != nil {
		return model.Tag{}, NewValidationError("validation error", fields)
	}

	current, err := u.tags.FindByID(ctx, tagID)
	if err == repo.ErrNotFound {
		return model.Tag{}, errNotFound("tag")
	}
	if err != nil {
		return model.Tag{}, errInternal()
	}

	current.Name = strings.TrimSpace(name)
	if err := u.tags.Update(ctx, current); err != nil {
		return model.Tag{}, errInternal()
	}
	return current, nil
}

func (u *TagUsecase) Delete(ctx context.Context, tagID int64) error {
	if tagID <= 0 {
		return NewValidationError("validation error", map[string]string{
			"id": "id must be a positive integer",
		})
	}
	if err := u.tags.Delete(ctx, tagID); err != nil {
		if err == repo.ErrNotFound {
			return errNotFound("tag")
		}
		return errInternal()
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type TagGormRepository struct {
	db *gorm.DB
}

func NewTagGormRepository(db *gorm.DB) *TagGormRepository {
	return &TagGormRepository{db: db}
}

func (r *TagGormRepository) List(ctx context.Context) ([]model.Tag, error) {
	var items []model.Tag
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Tag{}, err
	}
	return items, nil
}

func (r *TagGormRepository) FindByID(ctx context.Context, tagID int64) (model.Tag, error) {
	var t model.Tag
	err := r.db.WithContext(ctx).Where("id = ?", tagID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Tag{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Tag{}, err
	}
	return t, nil
}

// 存在する名前だけ返す。大文字小文字は区別しない
func (r *TagGormRepository) FindByNames(ctx context.Context, names []string) ([]model.Tag, error) {
	if len(names) == 0 {
		return []model.Tag{}, nil
	}

	lowered := make([]string, 0, len(names))
	for _, n := range names {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(n)))
	}

	var items []model.Tag
	err := r.db.WithContext(ctx).Where("lower(name) IN ?", lowered).Order("id asc").Find(&items).Error
	if err != nil {
		return []model.Tag{}, err
	}
	return items, nil
}

func (r *TagGormRepository) Create(ctx context.Context, tag model.Tag) (model.Tag, error) {
	if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return model.Tag{}, err
	}
	return tag, nil
}

func (r *TagGormRepository) Update(ctx context.Context, tag model.Tag) error {
	res := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("id = ?", tag.ID).
		Update("name", tag.Name)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *TagGormRepository) Delete(ctx context.Context, tagID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", tagID).Delete(&model.Tag{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

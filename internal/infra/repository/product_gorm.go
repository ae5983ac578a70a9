package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 絞り込み条件を組み立てる（countと本体で共用）
func (r *ProductGormRepository) buildListQuery(ctx context.Context, q repo.ProductListQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if q.Q != "" {
		tx = tx.Where("products.name ILIKE ?", "%"+q.Q+"%")
	}
	if q.CategoryID != nil {
		tx = tx.Where("products.category_id = ?", *q.CategoryID)
	}
	if len(q.TagIDs) > 0 {
		tx = tx.Joins("JOIN product_tags pt ON pt.product_id = products.id").
			Where("pt.tag_id IN ?", q.TagIDs)
	}

	return tx
}

func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var total int64
	if err := r.buildListQuery(ctx, q).Distinct("products.id").Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	var items []model.Product
	err := r.buildListQuery(ctx, q).
		Distinct("products.*").
		Preload("Category").
		Preload("Tags").
		Order("products.id asc").
		Limit(q.Limit).
		Offset(q.Skip).
		Find(&items).Error
	if err != nil {
		return []model.Product{}, 0, err
	}

	return items, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Where("id = ?", productID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) FindByIDs(ctx context.Context, productIDs []int64) ([]model.Product, error) {
	if len(productIDs) == 0 {
		return []model.Product{}, nil
	}

	var items []model.Product
	err := r.db.WithContext(ctx).Where("id IN ?", productIDs).Order("id asc").Find(&items).Error
	if err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, product model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&product).Error; err != nil {
		return model.Product{}, err
	}
	return product, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, product model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Product
		err := tx.Where("id = ?", product.ID).First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repo.ErrNotFound
		}
		if err != nil {
			return err
		}

		//many2manyはReplaceで貼り直す
		if err := tx.Model(&current).Association("Tags").Replace(product.Tags); err != nil {
			return err
		}

		return tx.Model(&current).
			Updates(map[string]interface{}{
				"name":        product.Name,
				"description": product.Description,
				"price":       product.Price,
				"image_url":   product.ImageURL,
				"category_id": product.CategoryID,
			}).Error
	})
}

func (r *ProductGormRepository) SoftDelete(ctx context.Context, productID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", productID).Delete(&model.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

package usecase

import (
	"context"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ProductUsecase struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	tags       repo.TagRepository
}

func NewProductUsecase(
	products repo.ProductRepository,
	categories repo.CategoryRepository,
	tags repo.TagRepository,
) *ProductUsecase {
	return &ProductUsecase{products: products, categories: categories, tags: tags}
}

type ListProductsInput struct {
	Skip     int
	Limit    int
	Q        string
	Category string
	Tags     []string
}

type ProductInput struct {
	Name        string
	Description string
	Price       int64
	ImageURL    string
	Category    string
	Tags        []string
}

// Listは公開カタログの検索。
// qは名前の部分一致、categoryとtagsは名前で指定する
func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) ([]model.Product, int64, error) {
	if in.Skip < 0 {
		in.Skip = 0
	}
	if in.Limit <= 0 {
		in.Limit = 10
	}
	if in.Limit > 100 {
		in.Limit = 100
	}

	query := repo.ProductListQuery{
		Skip:  in.Skip,
		Limit: in.Limit,
		Q:     strings.TrimSpace(in.Q),
	}

	//カテゴリ名が解決できない場合は絞り込まない（全件側に倒す）
	if name := strings.TrimSpace(in.Category); name != "" {
		if cat, err := u.categories.FindByName(ctx, name); err == nil {
			query.CategoryID = &cat.ID
		} else if err != repo.ErrNotFound {
			return nil, 0, errInternal()
		}
	}

	//タグ名はあるものだけに解決する。1つも無ければヒット0件
	if len(in.Tags) > 0 {
		resolved, err := u.tags.FindByNames(ctx, in.Tags)
		if err != nil {
			return nil, 0, errInternal()
		}
		if len(resolved) == 0 {
			return []model.Product{}, 0, nil
		}
		for _, t := range resolved {
			query.TagIDs = append(query.TagIDs, t.ID)
		}
	}

	list, total, err := u.products.List(ctx, query)
	if err != nil {
		return nil, 0, errInternal()
	}
	return list, total, nil
}

func (u *ProductUsecase) Detail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewValidationError("validation error", map[string]string{
			"id": "id must be a positive integer",
		})
	}

	p, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, errNotFound("product")
	}
	if err != nil {
		return model.Product{}, errInternal()
	}
	return p, nil
}

func validateProductInput(in ProductInput) map[string]string {
	fields := map[string]string{}
	if l := len(strings.TrimSpace(in.Name)); l < 3 || l > 255 {
		fields["name"] = "name must be between 3 and 255 characters"
	}
	if in.Price < 0 {
		fields["price"] = "price must be >= 0"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// AdminCreateは商品を登録する。
// タグは名前で受け、無いものは新規作成する。カテゴリは名前解決できなければ未設定
func (u *ProductUsecase) AdminCreate(ctx context.Context, in ProductInput) (model.Product, error) {
	if fields := validateProductInput(in); fields != nil {
		return model.Product{}, NewValidationError("validation error", fields)
	}

	p := model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
	}

	if name := strings.TrimSpace(in.Category); name != "" {
		if cat, err := u.categories.FindByName(ctx, name); err == nil {
			p.CategoryID = &cat.ID
		} else if err != repo.ErrNotFound {
			return model.Product{}, errInternal()
		}
	}

	tags, err := u.resolveOrCreateTags(ctx, in.Tags)
	if err != nil {
		return model.Product{}, err
	}
	p.Tags = tags

	created, err := u.products.Create(ctx, p)
	if err != nil {
		return model.Product{}, errInternal()
	}
	return created, nil
}

// AdminUpdateは既存商品を更新する。
// タグは既存の名前だけに解決し、1つも解決できなければ現状維持
func (u *ProductUsecase) AdminUpdate(ctx context.Context, productID int64, in ProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewValidationError("validation error", map[string]string{
			"id": "id must be a positive integer",
		})
	}
	if fields := validateProductInput(in); fields != nil {
		return model.Product{}, NewValidationError("validation error", fields)
	}

	current, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, errNotFound("product")
	}
	if err != nil {
		return model.Product{}, errInternal()
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Description = in.Description
	current.Price = in.Price
	if in.ImageURL != "" {
		current.ImageURL = in.ImageURL
	}

	if name := strings.TrimSpace(in.Category); name != "" {
		if cat, err := u.categories.FindByName(ctx, name); err == nil {
			current.CategoryID = &cat.ID
			current.Category = nil
		} else if err != repo.ErrNotFound {
			return model.Product{}, errInternal()
		}
	}

	if len(in.Tags) > 0 {
		resolved, err := u.tags.FindByNames(ctx, in.Tags)
		if err != nil {
			return model.Product{}, errInternal()
		}
		if len(resolved) > 0 {
			current.Tags = resolved
		}
	}

	if err := u.products.Update(ctx, current); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, errNotFound("product")
		}
		return model.Product{}, errInternal()
	}

	return u.Detail(ctx, productID)
}

func (u *ProductUsecase) AdminDelete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewValidationError("validation error", map[string]string{
			"id": "id must be a positive integer",
		})
	}
	if err := u.products.SoftDelete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return errNotFound("product")
		}
		return errInternal()
	}
	return nil
}

// 既存タグを名前で引き、無ければ作る（登録経路のみ）
func (u *ProductUsecase) resolveOrCreateTags(ctx context.Context, names []string) ([]model.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	existing, err := u.tags.FindByNames(ctx, names)
	if err != nil {
		return nil, errInternal()
	}
	byName := make(map[string]model.Tag, len(existing))
	for _, t := range existing {
		byName[strings.ToLower(t.Name)] = t
	}

	tags := make([]model.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		if t, ok := byName[key]; ok {
			tags = append(tags, t)
			continue
		}
		if len(name) > 20 {
			return nil, NewValidationError("validation error", map[string]string{
				"tags": "tag name must be at most 20 characters",
			})
		}
		created, err := u.tags.Create(ctx, model.Tag{Name: name})
		if err != nil {
			return nil, errInternal()
		}
		tags = append(tags, created)
	}

	return tags, nil
}

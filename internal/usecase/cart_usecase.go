package usecase

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CartUsecaseは/cartの業務ロジック。
// カートは(user, product)につき1行で、更新は丸ごと入れ替え
type CartUsecase struct {
	cartItems repo.CartItemRepository
	products  repo.ProductRepository
}

func NewCartUsecase(cartItems repo.CartItemRepository, products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{cartItems: cartItems, products: products}
}

type CartLineInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartInput struct {
	Items []CartLineInput
}

// 商品詳細のインライン表示用
type CartProductOutput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url"`
}

type CartItemOutput struct {
	ID      int64             `json:"id"`
	Product CartProductOutput `json:"product"`
	//カート投入時点のスナップショット
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url"`
	Quantity int64  `json:"qty"`
}

// GetCartは本人のカートを商品詳細つきで返す
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) ([]CartItemOutput, error) {
	if userID <= 0 {
		return nil, errUnauthorized()
	}

	lines, err := u.cartItems.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errInternal()
	}

	productIDs := make([]int64, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}
	products, err := u.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, errInternal()
	}
	productByID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	outs := make([]CartItemOutput, 0, len(lines))
	for _, line := range lines {
		out := CartItemOutput{
			ID:       line.ID,
			Name:     line.ProductName,
			Price:    line.UnitPriceSnapshot,
			ImageURL: line.ImageURL,
			Quantity: line.Quantity,
		}
		if p, ok := productByID[line.ProductID]; ok {
			out.Product = CartProductOutput{
				ID:       p.ID,
				Name:     p.Name,
				Price:    p.Price,
				ImageURL: p.ImageURL,
			}
		}
		outs = append(outs, out)
	}

	return outs, nil
}

// UpdateCartはカートを丸ごと入れ替える。
// 各明細には「今の」商品名・価格・画像をスナップショットする
func (u *CartUsecase) UpdateCart(ctx context.Context, userID int64, in UpdateCartInput) ([]CartItemOutput, error) {
	if userID <= 0 {
		return nil, errUnauthorized()
	}
	if len(in.Items) == 0 {
		return nil, NewValidationError("items should be a non-empty array", nil)
	}

	productIDs := make([]int64, 0, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID <= 0 {
			return nil, NewValidationError("validation error", map[string]string{
				"product_id": "product_id must be a positive integer",
			})
		}
		if item.Quantity < 1 {
			return nil, NewValidationError("validation error", map[string]string{
				"qty": fmt.Sprintf("quantity for product %d must be at least 1", item.ProductID),
			})
		}
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := u.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, errInternal()
	}
	if len(products) == 0 {
		return nil, NewHTTPError(http.StatusNotFound, "no products found for the provided product IDs")
	}
	productByID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	lines := make([]model.CartItem, 0, len(in.Items))
	for _, item := range in.Items {
		p, ok := productByID[item.ProductID]
		if !ok {
			return nil, NewHTTPError(http.StatusNotFound, fmt.Sprintf("product not found: %d", item.ProductID))
		}
		lines = append(lines, model.CartItem{
			UserID:            userID,
			ProductID:         p.ID,
			Quantity:          item.Quantity,
			UnitPriceSnapshot: p.Price,
			ProductName:       p.Name,
			ImageURL:          p.ImageURL,
		})
	}

	if err := u.cartItems.ReplaceForUser(ctx, userID, lines); err != nil {
		return nil, errInternal()
	}

	return u.GetCart(ctx, userID)
}

package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartItemRepoFake struct {
	byUser map[int64][]model.CartItem
	nextID int64
}

func newCartItemRepoFake() *cartItemRepoFake {
	return &cartItemRepoFake{byUser: map[int64][]model.CartItem{}}
}

func (f *cartItemRepoFake) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return append([]model.CartItem(nil), f.byUser[userID]...), nil
}

func (f *cartItemRepoFake) ListByUserIDForUpdate(ctx context.Context, userID int64) ([]model.CartItem, error) {
	panic("not used in CartUsecase tests")
}

func (f *cartItemRepoFake) ReplaceForUser(ctx context.Context, userID int64, items []model.CartItem) error {
	lines := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		f.nextID++
		it.ID = f.nextID
		lines = append(lines, it)
	}
	f.byUser[userID] = lines
	return nil
}

func (f *cartItemRepoFake) DeleteAllByUserID(ctx context.Context, userID int64) error {
	delete(f.byUser, userID)
	return nil
}

type productRepoFake struct {
	byID map[int64]model.Product
}

func (f *productRepoFake) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	panic("not used in CartUsecase tests")
}

func (f *productRepoFake) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	p, ok := f.byID[productID]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (f *productRepoFake) FindByIDs(ctx context.Context, productIDs []int64) ([]model.Product, error) {
	var out []model.Product
	for _, id := range productIDs {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *productRepoFake) Create(ctx context.Context, product model.Product) (model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (f *productRepoFake) Update(ctx context.Context, product model.Product) error {
	panic("not used in CartUsecase tests")
}

func (f *productRepoFake) SoftDelete(ctx context.Context, productID int64) error {
	panic("not used in CartUsecase tests")
}

func newCartFixtures() (*cartItemRepoFake, *productRepoFake, *usecase.CartUsecase) {
	carts := newCartItemRepoFake()
	products := &productRepoFake{byID: map[int64]model.Product{
		101: {ID: 101, Name: "Arabica Beans", Price: 1000, ImageURL: "beans.jpg"},
		102: {ID: 102, Name: "Drip Kettle", Price: 4500},
	}}
	return carts, products, usecase.NewCartUsecase(carts, products)
}

func TestCartUsecase_UpdateCart_SnapshotsCurrentProduct(t *testing.T) {
	carts, _, uc := newCartFixtures()

	out, err := uc.UpdateCart(context.Background(), 1, usecase.UpdateCartInput{
		Items: []usecase.CartLineInput{
			{ProductID: 101, Quantity: 2},
			{ProductID: 102, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	//スナップショットは今の商品名・価格・画像
	assert.Equal(t, "Arabica Beans", out[0].Name)
	assert.Equal(t, int64(1000), out[0].Price)
	assert.Equal(t, "beans.jpg", out[0].ImageURL)
	assert.Equal(t, int64(2), out[0].Quantity)
	//商品詳細もインラインで返る
	assert.Equal(t, int64(101), out[0].Product.ID)

	saved := carts.byUser[1]
	require.Len(t, saved, 2)
	assert.Equal(t, int64(1000), saved[0].UnitPriceSnapshot)
}

func TestCartUsecase_UpdateCart_ReplacesWhole(t *testing.T) {
	carts, _, uc := newCartFixtures()

	_, err := uc.UpdateCart(context.Background(), 1, usecase.UpdateCartInput{
		Items: []usecase.CartLineInput{{ProductID: 101, Quantity: 2}},
	})
	require.NoError(t, err)

	out, err := uc.UpdateCart(context.Background(), 1, usecase.UpdateCartInput{
		Items: []usecase.CartLineInput{{ProductID: 102, Quantity: 3}},
	})
	require.NoError(t, err)

	//前のカートは残らない
	require.Len(t, out, 1)
	assert.Equal(t, int64(102), out[0].Product.ID)
	assert.Len(t, carts.byUser[1], 1)
}

func TestCartUsecase_UpdateCart_UnknownProduct(t *testing.T) {
	_, _, uc := newCartFixtures()

	_, err := uc.UpdateCart(context.Background(), 1, usecase.UpdateCartInput{
		Items: []usecase.CartLineInput{
			{ProductID: 101, Quantity: 1},
			{ProductID: 999, Quantity: 1},
		},
	})
	assertHTTPError(t, err, 404, "product not found")
}

func TestCartUsecase_UpdateCart_NoProductsResolve(t *testing.T) {
	_, _, uc := newCartFixtures()

	_, err := uc.UpdateCart(context.Background(), 1, usecase.UpdateCartInput{
		Items: []usecase.CartLineInput{{ProductID: 999, Quantity: 1}},
	})
	assertHTTPError(t, err, 404, "no products found")
}

func TestCartUsecase_UpdateCart_Validation(t *testing.T) {
	_, _, uc := newCartFixtures()

	_, err := uc.UpdateCart(context.Background(), 1, usecase.UpdateCartInput{})
	assertHTTPError(t, err, 400, "non-empty")

	_, err = uc.UpdateCart(context.Background(), 1, usecase.UpdateCartInput{
		Items: []usecase.CartLineInput{{ProductID: 101, Quantity: 0}},
	})
	assertHTTPError(t, err, 400, "validation")
}

func TestCartUsecase_GetCart_Empty(t *testing.T) {
	_, _, uc := newCartFixtures()

	out, err := uc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, out)
}

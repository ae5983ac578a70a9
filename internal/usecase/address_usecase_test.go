package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/policy"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addressRepoFake struct {
	byID   map[int64]model.Address
	nextID int64
}

func newAddressRepoFake() *addressRepoFake {
	return &addressRepoFake{byID: map[int64]model.Address{}}
}

func (f *addressRepoFake) Create(ctx context.Context, address model.Address) (model.Address, error) {
	f.nextID++
	address.ID = f.nextID
	f.byID[address.ID] = address
	return address, nil
}

func (f *addressRepoFake) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	var out []model.Address
	for id := int64(1); id <= f.nextID; id++ {
		if a, ok := f.byID[id]; ok && a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *addressRepoFake) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	a, ok := f.byID[addressID]
	if !ok {
		return model.Address{}, repo.ErrNotFound
	}
	return a, nil
}

func (f *addressRepoFake) Update(ctx context.Context, address model.Address) error {
	if _, ok := f.byID[address.ID]; !ok {
		return repo.ErrNotFound
	}
	f.byID[address.ID] = address
	return nil
}

func (f *addressRepoFake) Delete(ctx context.Context, addressID int64) error {
	if _, ok := f.byID[addressID]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, addressID)
	return nil
}

func validAddressInput() usecase.AddressInput {
	return usecase.AddressInput{
		Province: "Jawa Barat",
		Regency:  "Bandung",
		District: "Coblong",
		Village:  "Dago",
		Detail:   "Jl. Dago No.1",
	}
}

func TestAddressUsecase_CreateAndList(t *testing.T) {
	addresses := newAddressRepoFake()
	uc := usecase.NewAddressUsecase(addresses)

	created, err := uc.Create(context.Background(), 1, validAddressInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)

	_, err = uc.Create(context.Background(), 2, validAddressInput())
	require.NoError(t, err)

	//本人の分だけ返る
	list, err := uc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestAddressUsecase_Create_Validation(t *testing.T) {
	uc := usecase.NewAddressUsecase(newAddressRepoFake())

	_, err := uc.Create(context.Background(), 1, usecase.AddressInput{Province: "Jawa Barat"})
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Contains(t, he.Fields, "regency")
	assert.Contains(t, he.Fields, "district")
	assert.Contains(t, he.Fields, "village")
}

func TestAddressUsecase_Update_OwnerOnly(t *testing.T) {
	addresses := newAddressRepoFake()
	uc := usecase.NewAddressUsecase(addresses)

	created, err := uc.Create(context.Background(), 1, validAddressInput())
	require.NoError(t, err)

	in := validAddressInput()
	in.Detail = "moved"

	//他人は403
	_, err = uc.Update(context.Background(), policy.Actor{UserID: 2, Role: model.RoleUser}, created.ID, in)
	assertHTTPError(t, err, 403, "not allowed")

	//本人は通る
	updated, err := uc.Update(context.Background(), policy.Actor{UserID: 1, Role: model.RoleUser}, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "moved", updated.Detail)

	//adminも通る
	in.Detail = "admin touch"
	_, err = uc.Update(context.Background(), policy.Actor{UserID: 99, Role: model.RoleAdmin}, created.ID, in)
	assert.NoError(t, err)
}

func TestAddressUsecase_Delete_OwnerOnly(t *testing.T) {
	addresses := newAddressRepoFake()
	uc := usecase.NewAddressUsecase(addresses)

	created, err := uc.Create(context.Background(), 1, validAddressInput())
	require.NoError(t, err)

	_, err = uc.Delete(context.Background(), policy.Actor{UserID: 2, Role: model.RoleUser}, created.ID)
	assertHTTPError(t, err, 403, "not allowed")

	deleted, err := uc.Delete(context.Background(), policy.Actor{UserID: 1, Role: model.RoleUser}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = uc.Delete(context.Background(), policy.Actor{UserID: 1, Role: model.RoleUser}, created.ID)
	assertHTTPError(t, err, 404, "not found")
}

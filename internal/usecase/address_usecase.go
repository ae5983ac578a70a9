package usecase

import (
	"context"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/policy"
	repo "storefront/internal/repository"
)

type AddressUsecase struct {
	addresses repo.AddressRepository
}

func NewAddressUsecase(addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

type AddressInput struct {
	Province string
	Regency  string
	District string
	Village  string
	Detail   string
}

func validateAddressInput(in AddressInput) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(in.Province) == "" {
		fields["province"] = "province is required"
	}
	if strings.TrimSpace(in.Regency) == "" {
		fields["regency"] = "regency is required"
	}
	if strings.TrimSpace(in.District) == "" {
		fields["district"] = "district is required"
	}
	if strings.TrimSpace(in.Village) == "" {
		fields["village"] = "village is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (u *AddressUsecase) Create(ctx context.Context, userID int64, in AddressInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, errUnauthorized()
	}
	if fields := validateAddressInput(in); fields != nil {
		return model.Address{}, NewValidationError("validation error", fields)
	}

	created, err := u.addresses.Create(ctx, model.Address{
		UserID:   userID,
		Province: in.Province,
		Regency:  in.Regency,
		District: in.District,
		Village:  in.Village,
		Detail:   in.Detail,
	})
	if err != nil {
		return model.Address{}, errInternal()
	}

	return created, nil
}

// Listは本人の住所のみ
func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	if userID <= 0 {
		return nil, errUnauthorized()
	}

	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errInternal()
	}
	return list, nil
}

// Updateはpolicyで所有者（またはadmin）のみ許可
func (u *AddressUsecase) Update(ctx context.Context, actor policy.Actor, addressID int64, in AddressInput) (model.Address, error) {
	if actor.UserID <= 0 {
		return model.Address{}, errUnauthorized()
	}
	if addressID <= 0 {
		return model.Address{}, NewValidationError("validation error", map[string]string{
			"id": "id must be a positive integer",
		})
	}
	if fields := validateAddressInput(in); fields != nil {
		return model.Address{}, NewValidationError("validation error", fields)
	}

	current, err := u.addresses.FindByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return model.Address{}, errNotFound("delivery address")
	}
	if err != nil {
		return model.Address{}, errInternal()
	}

	if !policy.Can(actor, policy.ActionUpdate, policy.AddressResource{OwnerID: current.UserID}) {
		return model.Address{}, errForbidden()
	}

	current.Province = in.Province
	current.Regency = in.Regency
	current.District = in.District
	current.Village = in.Village
	current.Detail = in.Detail

	if err := u.addresses.Update(ctx, current); err != nil {
		if err == repo.ErrNotFound {
			return model.Address{}, errNotFound("delivery address")
		}
		return model.Address{}, errInternal()
	}

	return current, nil
}

// Deleteもpolicyで所有者（またはadmin）のみ許可
func (u *AddressUsecase) Delete(ctx context.Context, actor policy.Actor, addressID int64) (model.Address, error) {
	if actor.UserID <= 0 {
		return model.Address{}, errUnauthorized()
	}
	if addressID <= 0 {
		return model.Address{}, NewValidationError("validation error", map[string]string{
			"id": "id must be a positive integer",
		})
	}

	current, err := u.addresses.FindByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return model.Address{}, errNotFound("delivery address")
	}
	if err != nil {
		return model.Address{}, errInternal()
	}

	if !policy.Can(actor, policy.ActionDelete, policy.AddressResource{OwnerID: current.UserID}) {
		return model.Address{}, errForbidden()
	}

	if err := u.addresses.Delete(ctx, addressID); err != nil {
		if err == repo.ErrNotFound {
			return model.Address{}, errNotFound("delivery address")
		}
		return model.Address{}, errInternal()
	}

	return current, nil
}

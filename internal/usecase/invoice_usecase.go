package usecase

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/policy"
	repo "storefront/internal/repository"
)

// DeriveInvoiceは注文と明細から請求書を導出する純関数。
// sub_total = Σ(price × qty)、total = sub_total + delivery_fee。
// 金額は最小通貨単位のint64（floatは使わない）
func DeriveInvoice(number string, order model.Order, items []model.OrderItem) model.Invoice {
	var subTotal int64
	for _, it := range items {
		subTotal += it.Price * it.Quantity
	}

	return model.Invoice{
		Number:          number,
		UserID:          order.UserID,
		OrderID:         order.ID,
		SubTotal:        subTotal,
		DeliveryFee:     order.DeliveryFee,
		Total:           subTotal + order.DeliveryFee,
		DeliveryAddress: order.DeliveryAddress,
	}
}

type InvoiceUsecase struct {
	invoices repo.InvoiceRepository
}

func NewInvoiceUsecase(invoices repo.InvoiceRepository) *InvoiceUsecase {
	return &InvoiceUsecase{invoices: invoices}
}

// ShowByOrderIDは注文に紐づく請求書を返す。閲覧はpolicyで本人とadminのみ
func (u *InvoiceUsecase) ShowByOrderID(ctx context.Context, actor policy.Actor, orderID int64) (model.Invoice, error) {
	if actor.UserID <= 0 {
		return model.Invoice{}, errUnauthorized()
	}
	if orderID <= 0 {
		return model.Invoice{}, NewValidationError("validation error", map[string]string{
			"order_id": "order_id must be a positive integer",
		})
	}

	inv, err := u.invoices.FindByOrderID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Invoice{}, errNotFound("invoice")
	}
	if err != nil {
		return model.Invoice{}, errInternal()
	}

	if !policy.Can(actor, policy.ActionRead, policy.InvoiceResource{OwnerID: inv.UserID}) {
		return model.Invoice{}, errForbidden()
	}

	return inv, nil
}

package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type InvoiceRepository interface {
	//order_idのuniqueIndexで1注文1請求書を保証する
	Create(ctx context.Context, invoice model.Invoice) (model.Invoice, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.Invoice, error)
}

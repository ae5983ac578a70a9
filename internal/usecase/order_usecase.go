package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type OrderUsecase struct {
	tx    repo.TransactionManager
	idGen IDGenerator
}

func NewOrderUsecase(tx repo.TransactionManager, idGen IDGenerator) *OrderUsecase {
	return &OrderUsecase{tx: tx, idGen: idGen}
}

type CheckoutInput struct {
	DeliveryFee       int64
	DeliveryAddressID int64
}

type OrderItemOutput struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"qty"`
}

type OrderOutput struct {
	ID              int64                 `json:"id"`
	UserID          int64                 `json:"user_id"`
	Status          string                `json:"status"`
	DeliveryFee     int64                 `json:"delivery_fee"`
	DeliveryAddress model.ShippingAddress `json:"delivery_address"`
	OrderItems      []OrderItemOutput     `json:"order_items"`
	CreatedAt       time.Time             `json:"created_at"`
}

// Checkoutはカートを注文＋明細＋請求書へ変換する。
// 書き込みは全部1トランザクション。途中で失敗したら注文も請求書も残らず、
// カートはそのままなのでリトライ可能
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, errUnauthorized()
	}
	if in.DeliveryAddressID <= 0 {
		return OrderOutput{}, NewValidationError("validation error", map[string]string{
			"delivery_address_id": "delivery_address_id is required",
		})
	}
	if in.DeliveryFee < 0 {
		return OrderOutput{}, NewValidationError("validation error", map[string]string{
			"delivery_fee": "delivery_fee must be >= 0",
		})
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート明細を行ロック付きで読む。
		//同一ユーザーの同時checkoutはここで直列化され、負けた方は空カートで失敗する
		lines, err := r.CartItems().ListByUserIDForUpdate(ctx, userID)
		if err != nil {
			return errInternal()
		}
		if len(lines) == 0 {
			return errEmptyCart()
		}

		//住所の存在＋所有チェック
		addr, err := r.Addresses().FindByID(ctx, in.DeliveryAddressID)
		if err == repo.ErrNotFound {
			return errNotFound("delivery address")
		}
		if err != nil {
			return errInternal()
		}
		if addr.UserID != userID {
			return errForbidden()
		}

		//明細はカートのスナップショットではなく「今の」商品名・価格で作る
		productIDs := make([]int64, 0, len(lines))
		for _, line := range lines {
			productIDs = append(productIDs, line.ProductID)
		}
		products, err := r.Products().FindByIDs(ctx, productIDs)
		if err != nil {
			return errInternal()
		}
		productByID := make(map[int64]model.Product, len(products))
		for _, p := range products {
			productByID[p.ID] = p
		}

		items := make([]model.OrderItem, 0, len(lines))
		for _, line := range lines {
			p, ok := productByID[line.ProductID]
			if !ok {
				return errNotFound("product")
			}
			if line.Quantity < 1 {
				return NewValidationError("validation error", map[string]string{
					"qty": fmt.Sprintf("quantity for product %d must be at least 1", line.ProductID),
				})
			}
			items = append(items, model.OrderItem{
				ProductID: line.ProductID,
				Name:      p.Name,
				Price:     p.Price,
				Quantity:  line.Quantity,
			})
		}

		//注文本体。住所は値コピー（後からAddressを編集しても過去の注文は変わらない）
		order, err := r.Orders().Create(ctx, model.Order{
			UserID:      userID,
			Status:      model.OrderStatusWaitingPayment,
			DeliveryFee: in.DeliveryFee,
			DeliveryAddress: model.ShippingAddress{
				Province: addr.Province,
				Regency:  addr.Regency,
				District: addr.District,
				Village:  addr.Village,
				Detail:   addr.Detail,
			},
		})
		if err != nil {
			return errInternal()
		}

		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return errInternal()
		}

		//請求書は保存フックではなく明示的なステップとしてここで作る。
		//失敗したら注文ごとロールバックされる
		invoice := DeriveInvoice(u.idGen.NewID(), order, items)
		if _, err := r.Invoices().Create(ctx, invoice); err != nil {
			return errInternal()
		}

		//最後にカートを空にする
		if err := r.CartItems().DeleteAllByUserID(ctx, userID); err != nil {
			return errInternal()
		}

		out = toOrderOutput(order, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListMyOrdersは本人の注文一覧（作成時刻の昇順、skip/limit）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, skip int, limit int) ([]OrderOutput, int64, error) {
	if userID <= 0 {
		return nil, 0, errUnauthorized()
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	var outs []OrderOutput
	var total int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, count, err := r.Orders().ListByUserID(ctx, userID, skip, limit)
		if err != nil {
			return errInternal()
		}
		total = count

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return errInternal()
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return nil, 0, err
	}
	return outs, total, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		DeliveryFee:     o.DeliveryFee,
		DeliveryAddress: o.DeliveryAddress,
		OrderItems:      outItems,
		CreatedAt:       o.CreatedAt,
	}
}

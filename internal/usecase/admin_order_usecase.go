package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 管理者向けの注文オペレーション（一覧とステータス更新）
type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

type AdminListOrdersInput struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
}

// ステータスは一方向にしか進めない
var orderStatusRank = map[model.OrderStatus]int{
	model.OrderStatusWaitingPayment: 0,
	model.OrderStatusProcessing:     1,
	model.OrderStatusInDelivery:     2,
	model.OrderStatusDelivered:      3,
}

func (u *AdminOrderUsecase) List(ctx context.Context, in AdminListOrdersInput) ([]OrderOutput, int64, error) {
	if in.Status != "" {
		if _, ok := orderStatusRank[model.OrderStatus(in.Status)]; !ok {
			return nil, 0, NewValidationError("validation error", map[string]string{
				"status": "status must be one of waiting_payment, processing, in_delivery, delivered",
			})
		}
	}

	var outs []OrderOutput
	var total int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, count, err := r.Orders().ListAdmin(ctx, repo.AdminOrderListFilter{
			Page:   in.Page,
			Limit:  in.Limit,
			Status: in.Status,
			UserID: in.UserID,
		})
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

// UpdateStatusは注文ステータスを進め、前後の状態を監査ログに残す。
// 更新とログは同一トランザクション
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, adminUserID int64, orderID int64, status string) (OrderOutput, error) {
	if adminUserID <= 0 {
		return OrderOutput{}, errUnauthorized()
	}
	if orderID <= 0 {
		return OrderOutput{}, NewValidationError("validation error", map[string]string{
			"id": "id must be a positive integer",
		})
	}
	next := model.OrderStatus(status)
	nextRank, ok := orderStatusRank[next]
	if !ok {
		return OrderOutput{}, NewValidationError("validation error", map[string]string{
			"status": "status must be one of waiting_payment, processing, in_delivery, delivered",
		})
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return errNotFound("order")
		}
		if err != nil {
			return errInternal()
		}

		if nextRank <= orderStatusRank[order.Status] {
			return NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("order status cannot move from %s to %s", order.Status, next))
		}

		before := order
		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			return errInternal()
		}
		order.Status = next

		beforeJSON, err := json.Marshal(map[string]string{"status": string(before.Status)})
		if err != nil {
			return errInternal()
		}
		afterJSON, err := json.Marshal(map[string]string{"status": string(next)})
		if err != nil {
			return errInternal()
		}
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   string(beforeJSON),
			AfterJSON:    string(afterJSON),
		}); err != nil {
			return errInternal()
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
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

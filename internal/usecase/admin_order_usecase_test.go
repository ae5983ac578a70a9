package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAdminOrderStore() *memStore {
	store := newMemStore()
	id := store.newID()
	store.orders[id] = model.Order{ID: id, UserID: 1, Status: model.OrderStatusWaitingPayment, DeliveryFee: 500}
	store.orderItems[id] = []model.OrderItem{
		{ID: 100, OrderID: id, ProductID: 101, Name: "Arabica Beans", Price: 1000, Quantity: 2},
	}
	return store
}

func TestAdminOrderUsecase_UpdateStatus_ForwardTransition(t *testing.T) {
	store := seedAdminOrderStore()
	uc := usecase.NewAdminOrderUsecase(&memTxManager{store: store})

	out, err := uc.UpdateStatus(context.Background(), 99, 1, "processing")
	require.NoError(t, err)
	assert.Equal(t, "processing", out.Status)

	//監査ログに前後のステータスが残る
	require.Len(t, store.auditLogs, 1)
	log := store.auditLogs[0]
	assert.Equal(t, int64(99), log.ActorUserID)
	assert.Equal(t, model.AuditActionUpdateOrderStatus, log.Action)
	assert.Equal(t, model.AuditResourceOrder, log.ResourceType)
	assert.Equal(t, int64(1), log.ResourceID)
	assert.JSONEq(t, `{"status":"waiting_payment"}`, log.BeforeJSON)
	assert.JSONEq(t, `{"status":"processing"}`, log.AfterJSON)
}

func TestAdminOrderUsecase_UpdateStatus_SkippingAheadAllowed(t *testing.T) {
	store := seedAdminOrderStore()
	uc := usecase.NewAdminOrderUsecase(&memTxManager{store: store})

	//waiting_payment -> in_delivery は前進なので通る
	out, err := uc.UpdateStatus(context.Background(), 99, 1, "in_delivery")
	require.NoError(t, err)
	assert.Equal(t, "in_delivery", out.Status)
}

func TestAdminOrderUsecase_UpdateStatus_BackwardRejected(t *testing.T) {
	store := seedAdminOrderStore()
	o := store.orders[1]
	o.Status = model.OrderStatusInDelivery
	store.orders[1] = o

	uc := usecase.NewAdminOrderUsecase(&memTxManager{store: store})

	_, err := uc.UpdateStatus(context.Background(), 99, 1, "processing")
	assertHTTPError(t, err, 422, "cannot move")

	//巻き戻しなので監査ログも残らない
	assert.Empty(t, store.auditLogs)
	assert.Equal(t, model.OrderStatusInDelivery, store.orders[1].Status)
}

func TestAdminOrderUsecase_UpdateStatus_SameStatusRejected(t *testing.T) {
	store := seedAdminOrderStore()
	uc := usecase.NewAdminOrderUsecase(&memTxManager{store: store})

	_, err := uc.UpdateStatus(context.Background(), 99, 1, "waiting_payment")
	assertHTTPError(t, err, 422, "cannot move")
}

func TestAdminOrderUsecase_UpdateStatus_InvalidStatus(t *testing.T) {
	uc := usecase.NewAdminOrderUsecase(&memTxManager{store: seedAdminOrderStore()})

	_, err := uc.UpdateStatus(context.Background(), 99, 1, "canceled")
	assertHTTPError(t, err, 400, "status must be one of")
}

func TestAdminOrderUsecase_UpdateStatus_OrderNotFound(t *testing.T) {
	uc := usecase.NewAdminOrderUsecase(&memTxManager{store: newMemStore()})

	_, err := uc.UpdateStatus(context.Background(), 99, 42, "processing")
	assertHTTPError(t, err, 404, "not found")
}

func TestAdminOrderUsecase_List_FiltersByStatus(t *testing.T) {
	store := seedAdminOrderStore()
	id := store.newID()
	store.orders[id] = model.Order{ID: id, UserID: 2, Status: model.OrderStatusDelivered}

	uc := usecase.NewAdminOrderUsecase(&memTxManager{store: store})

	out, total, err := uc.List(context.Background(), usecase.AdminListOrdersInput{Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, out, 1)
	assert.Equal(t, "delivered", out[0].Status)
}

func TestAdminOrderUsecase_List_InvalidStatus(t *testing.T) {
	uc := usecase.NewAdminOrderUsecase(&memTxManager{store: newMemStore()})

	_, _, err := uc.List(context.Background(), usecase.AdminListOrdersInput{Status: "bogus"})
	assertHTTPError(t, err, 400, "status must be one of")
}

package usecase

import (
	"context"
	"testing"

	"robostore/internal/domain/model"
	repo "robostore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks (Admin向け：衝突回避)
// =====================

type AdmAuditRepoMock struct{ mock.Mock }

func (m *AdmAuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AdmAuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	panic("not used in AdminOrderUsecase tests")
}

type AdmInventoryRepoMock struct{ mock.Mock }

func (m *AdmInventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdmInventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	panic("not used in AdminOrderUsecase tests")
}

func (m *AdmInventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *AdmInventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	panic("not used in AdminOrderUsecase tests")
}

// =====================
// UpdateStatus tests
// =====================

func TestAdminUpdateStatus_ValidTransition(t *testing.T) {
	orders := new(OrdOrderRepoMock)
	audit := new(AdmAuditRepoMock)

	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, OrderNumber: "ORD-1-AAAAAAAAA", Status: model.OrderStatusPending,
		GuestEmail: "taro@example.com",
	}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusConfirmed).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	tx := &OrdTxManagerMock{Repos: &OrdTxReposMock{orders: orders, auditLogs: audit}}
	uc := NewAdminOrderUsecase(tx, &noopNotifier{})

	err := uc.UpdateStatus(context.Background(), 1, 1, AdminUpdateOrderStatusInput{Status: "confirmed"})
	assert.NoError(t, err)

	orders.AssertCalled(t, "UpdateStatus", mock.Anything, int64(1), model.OrderStatusConfirmed)
	audit.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_RejectsSkippedTransition(t *testing.T) {
	orders := new(OrdOrderRepoMock)

	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusPending,
	}, nil)

	tx := &OrdTxManagerMock{Repos: &OrdTxReposMock{orders: orders}}
	uc := NewAdminOrderUsecase(tx, &noopNotifier{})

	//pending → shipped は飛ばせない
	err := uc.UpdateStatus(context.Background(), 1, 1, AdminUpdateOrderStatusInput{Status: "shipped"})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_TerminalStatesAreFrozen(t *testing.T) {
	for _, from := range []model.OrderStatus{model.OrderStatusDelivered, model.OrderStatusCancelled} {
		orders := new(OrdOrderRepoMock)
		orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{ID: 1, Status: from}, nil)

		tx := &OrdTxManagerMock{Repos: &OrdTxReposMock{orders: orders}}
		uc := NewAdminOrderUsecase(tx, &noopNotifier{})

		err := uc.UpdateStatus(context.Background(), 1, 1, AdminUpdateOrderStatusInput{Status: "confirmed"})
		he, ok := AsHTTPError(err)
		assert.True(t, ok, "from=%s", from)
		assert.Equal(t, 400, he.Status)
	}
}

func TestAdminUpdateStatus_SameStatusIsNoop(t *testing.T) {
	orders := new(OrdOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusConfirmed,
	}, nil)

	tx := &OrdTxManagerMock{Repos: &OrdTxReposMock{orders: orders}}
	uc := NewAdminOrderUsecase(tx, &noopNotifier{})

	err := uc.UpdateStatus(context.Background(), 1, 1, AdminUpdateOrderStatusInput{Status: "confirmed"})
	assert.NoError(t, err)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// キャンセルで明細ぶんの在庫が戻る
func TestAdminUpdateStatus_CancelRestocksItems(t *testing.T) {
	orders := new(OrdOrderRepoMock)
	orderItems := new(OrdOrderItemRepoMock)
	inventory := new(AdmInventoryRepoMock)
	audit := new(AdmAuditRepoMock)

	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusProcessing, GuestEmail: "taro@example.com",
	}, nil)
	orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{
		{ProductID: 10, Quantity: 2},
		{ProductID: 11, Quantity: 3},
	}, nil)
	inventory.On("IncreaseStock", mock.Anything, int64(10), int64(2)).Return(nil)
	inventory.On("IncreaseStock", mock.Anything, int64(11), int64(3)).Return(nil)
	orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusCancelled).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	tx := &OrdTxManagerMock{Repos: &OrdTxReposMock{
		orders: orders, orderItems: orderItems, inventory: inventory, auditLogs: audit,
	}}
	uc := NewAdminOrderUsecase(tx, &noopNotifier{})

	err := uc.UpdateStatus(context.Background(), 1, 1, AdminUpdateOrderStatusInput{Status: "cancelled"})
	assert.NoError(t, err)

	inventory.AssertCalled(t, "IncreaseStock", mock.Anything, int64(10), int64(2))
	inventory.AssertCalled(t, "IncreaseStock", mock.Anything, int64(11), int64(3))
}

func TestAdminUpdateStatus_ShippedWithTrackingNumber(t *testing.T) {
	orders := new(OrdOrderRepoMock)
	audit := new(AdmAuditRepoMock)

	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusProcessing, GuestEmail: "taro@example.com",
	}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusShipped).Return(nil)
	orders.On("UpdateTrackingNumber", mock.Anything, int64(1), "JP123456789").Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	tx := &OrdTxManagerMock{Repos: &OrdTxReposMock{orders: orders, auditLogs: audit}}
	uc := NewAdminOrderUsecase(tx, &noopNotifier{})

	err := uc.UpdateStatus(context.Background(), 1, 1, AdminUpdateOrderStatusInput{
		Status:         "shipped",
		TrackingNumber: "JP123456789",
	})
	assert.NoError(t, err)
	orders.AssertCalled(t, "UpdateTrackingNumber", mock.Anything, int64(1), "JP123456789")
}

func TestAdminUpdateStatus_UnknownStatus(t *testing.T) {
	tx := &OrdTxManagerMock{Repos: &OrdTxReposMock{}}
	uc := NewAdminOrderUsecase(tx, &noopNotifier{})

	err := uc.UpdateStatus(context.Background(), 1, 1, AdminUpdateOrderStatusInput{Status: "PAID"})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

// =====================
// UpdatePaymentStatus tests
// =====================

func TestAdminUpdatePaymentStatus_ValidTransition(t *testing.T) {
	orders := new(OrdOrderRepoMock)
	audit := new(AdmAuditRepoMock)

	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, PaymentStatus: model.PaymentStatusPending,
	}, nil)
	orders.On("UpdatePaymentStatus", mock.Anything, int64(1), model.PaymentStatusPaid).Return(nil)
	audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	tx := &OrdTxManagerMock{Repos: &OrdTxReposMock{orders: orders, auditLogs: audit}}
	uc := NewAdminOrderUsecase(tx, &noopNotifier{})

	err := uc.UpdatePaymentStatus(context.Background(), 1, 1, AdminUpdatePaymentStatusInput{PaymentStatus: "paid"})
	assert.NoError(t, err)
}

func TestAdminUpdatePaymentStatus_RefundRequiresPaid(t *testing.T) {
	orders := new(OrdOrderRepoMock)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, PaymentStatus: model.PaymentStatusPending,
	}, nil)

	tx := &OrdTxManagerMock{Repos: &OrdTxReposMock{orders: orders}}
	uc := NewAdminOrderUsecase(tx, &noopNotifier{})

	err := uc.UpdatePaymentStatus(context.Background(), 1, 1, AdminUpdatePaymentStatusInput{PaymentStatus: "refunded"})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

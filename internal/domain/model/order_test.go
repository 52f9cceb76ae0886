package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrderStatus(t *testing.T) {
	//前進は1段ずつ
	assert.True(t, CanTransitionOrderStatus(OrderStatusPending, OrderStatusConfirmed))
	assert.True(t, CanTransitionOrderStatus(OrderStatusConfirmed, OrderStatusProcessing))
	assert.True(t, CanTransitionOrderStatus(OrderStatusProcessing, OrderStatusShipped))
	assert.True(t, CanTransitionOrderStatus(OrderStatusShipped, OrderStatusDelivered))

	//飛ばしは不可
	assert.False(t, CanTransitionOrderStatus(OrderStatusPending, OrderStatusShipped))
	assert.False(t, CanTransitionOrderStatus(OrderStatusConfirmed, OrderStatusDelivered))

	//後退も不可
	assert.False(t, CanTransitionOrderStatus(OrderStatusShipped, OrderStatusProcessing))
}

func TestCancelReachableFromNonTerminal(t *testing.T) {
	for _, from := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped,
	} {
		assert.True(t, CanTransitionOrderStatus(from, OrderStatusCancelled), "from=%s", from)
	}
}

func TestTerminalStatusesHaveNoExit(t *testing.T) {
	for _, to := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.False(t, CanTransitionOrderStatus(OrderStatusDelivered, to), "to=%s", to)
		assert.False(t, CanTransitionOrderStatus(OrderStatusCancelled, to), "to=%s", to)
	}
}

func TestCanTransitionPaymentStatus(t *testing.T) {
	assert.True(t, CanTransitionPaymentStatus(PaymentStatusPending, PaymentStatusPaid))
	assert.True(t, CanTransitionPaymentStatus(PaymentStatusPending, PaymentStatusFailed))
	assert.True(t, CanTransitionPaymentStatus(PaymentStatusPaid, PaymentStatusRefunded))

	//失敗からは再試行でpendingに戻れる
	assert.True(t, CanTransitionPaymentStatus(PaymentStatusFailed, PaymentStatusPending))

	//払っていないものは返金できない
	assert.False(t, CanTransitionPaymentStatus(PaymentStatusPending, PaymentStatusRefunded))
	assert.False(t, CanTransitionPaymentStatus(PaymentStatusRefunded, PaymentStatusPaid))
}

func TestIsOrderStatus(t *testing.T) {
	assert.True(t, IsOrderStatus("pending"))
	assert.True(t, IsOrderStatus("cancelled"))
	assert.False(t, IsOrderStatus("PENDING"))
	assert.False(t, IsOrderStatus("unknown"))
}

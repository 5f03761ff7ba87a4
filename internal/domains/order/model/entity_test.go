package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusPredicates(t *testing.T) {
	assert.True(t, IsAssignableStatus(OrderStatusPending))
	assert.True(t, IsAssignableStatus(OrderStatusShipped))
	assert.True(t, IsAssignableStatus(OrderStatusDelivered))

	// Terminal states are reached through cancel or reconciliation only.
	assert.False(t, IsAssignableStatus(OrderStatusCancelled))
	assert.False(t, IsAssignableStatus(OrderStatusPaid))
	assert.False(t, IsAssignableStatus("unknown"))

	assert.True(t, IsTerminalStatus(OrderStatusCancelled))
	assert.True(t, IsTerminalStatus(OrderStatusPaid))
	assert.False(t, IsTerminalStatus(OrderStatusDelivered))
}

func TestOrderPredicates(t *testing.T) {
	order := &Order{Status: OrderStatusPending, PaymentStatus: PaymentStatusUnpaid}
	assert.True(t, order.CanBeCancelled())
	assert.False(t, order.IsTerminal())
	assert.False(t, order.IsPaid())

	order.Status = OrderStatusPaid
	order.PaymentStatus = PaymentStatusPaid
	assert.False(t, order.CanBeCancelled())
	assert.True(t, order.IsTerminal())
	assert.True(t, order.IsPaid())
}

package order

import (
	"testing"
)

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusPreparing, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusPreparing, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusReady, false},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusPreparing, OrderStatusCancelled, false},
		{OrderStatusPreparing, OrderStatusPending, false},
		{OrderStatusReady, OrderStatusDelivering, true},
		{OrderStatusReady, OrderStatusDelivered, true}, // pickup skips delivering
		{OrderStatusReady, OrderStatusPreparing, false},
		{OrderStatusDelivering, OrderStatusDelivered, true},
		{OrderStatusDelivering, OrderStatusReady, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{"", OrderStatusPending, false},
		{OrderStatusPending, "", false},
	}
	for _, tt := range tests {
		got := ValidStatusTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("ValidStatusTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanBeCancelled(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{OrderStatusPending, true},
		{OrderStatusConfirmed, true},
		{OrderStatusPreparing, false},
		{OrderStatusReady, false},
		{OrderStatusDelivering, false},
		{OrderStatusDelivered, false},
		{OrderStatusCancelled, false},
	}
	for _, tt := range tests {
		o := &Order{Status: tt.status}
		if got := o.CanBeCancelled(); got != tt.want {
			t.Errorf("CanBeCancelled() with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestIsActive(t *testing.T) {
	active := []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady}
	for _, s := range active {
		o := &Order{Status: s}
		if !o.IsActive() {
			t.Errorf("order with status %q should be active", s)
		}
	}
	inactive := []OrderStatus{OrderStatusDelivering, OrderStatusDelivered, OrderStatusCancelled}
	for _, s := range inactive {
		o := &Order{Status: s}
		if o.IsActive() {
			t.Errorf("order with status %q should not be active", s)
		}
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	o := &Order{ID: 42}
	number := o.GenerateOrderNumber()
	if len(number) != len("ORD-20060102-00042") {
		t.Errorf("unexpected order number format: %s", number)
	}
	if number[:4] != "ORD-" {
		t.Errorf("order number should start with ORD-: %s", number)
	}
	if number[len(number)-5:] != "00042" {
		t.Errorf("order number should end with zero-padded ID: %s", number)
	}
}

package coupon

import (
	"testing"
	"time"
)

func TestDiscountFor(t *testing.T) {
	tests := []struct {
		name     string
		coupon   Coupon
		subtotal int64
		want     int64
	}{
		{
			name:     "percentage",
			coupon:   Coupon{DiscountType: DiscountTypePercentage, DiscountValue: 10},
			subtotal: 5980,
			want:     598,
		},
		{
			name:     "percentage capped",
			coupon:   Coupon{DiscountType: DiscountTypePercentage, DiscountValue: 50, MaxDiscountAmount: 1000},
			subtotal: 10000,
			want:     1000,
		},
		{
			name:     "fixed amount",
			coupon:   Coupon{DiscountType: DiscountTypeFixedAmount, DiscountValue: 500},
			subtotal: 5980,
			want:     500,
		},
		{
			name:     "fixed amount larger than subtotal is not clamped here",
			coupon:   Coupon{DiscountType: DiscountTypeFixedAmount, DiscountValue: 9000},
			subtotal: 500,
			want:     9000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coupon.DiscountFor(tt.subtotal); got != tt.want {
				t.Errorf("DiscountFor(%d) = %d, want %d", tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name        string
		coupon      Coupon
		subtotal    int64
		wantApplied bool
		wantAmount  int64
	}{
		{
			name:        "valid percentage coupon",
			coupon:      Coupon{Code: "WELCOME10", DiscountType: DiscountTypePercentage, DiscountValue: 10, IsActive: true},
			subtotal:    5980,
			wantApplied: true,
			wantAmount:  598,
		},
		{
			name:        "inactive coupon",
			coupon:      Coupon{Code: "OLD", DiscountType: DiscountTypeFixedAmount, DiscountValue: 500, IsActive: false},
			subtotal:    5980,
			wantApplied: false,
		},
		{
			name:        "expired coupon",
			coupon:      Coupon{Code: "EXPIRED", DiscountType: DiscountTypeFixedAmount, DiscountValue: 500, IsActive: true, ValidUntil: &past},
			subtotal:    5980,
			wantApplied: false,
		},
		{
			name:        "not yet expired",
			coupon:      Coupon{Code: "FRESH", DiscountType: DiscountTypeFixedAmount, DiscountValue: 500, IsActive: true, ValidUntil: &future},
			subtotal:    5980,
			wantApplied: true,
			wantAmount:  500,
		},
		{
			name:        "below minimum order",
			coupon:      Coupon{Code: "MIN", DiscountType: DiscountTypeFixedAmount, DiscountValue: 500, IsActive: true, MinOrderAmount: 10000},
			subtotal:    5980,
			wantApplied: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := tt.coupon.Apply(tt.subtotal, now)
			if app.Applied != tt.wantApplied {
				t.Fatalf("Applied = %v, want %v (message: %s)", app.Applied, tt.wantApplied, app.Message)
			}
			if tt.wantApplied && app.DiscountAmount != tt.wantAmount {
				t.Errorf("DiscountAmount = %d, want %d", app.DiscountAmount, tt.wantAmount)
			}
			if app.Message == "" {
				t.Error("Apply should always set a message")
			}
		})
	}
}

// internal/domain/cart/service_test.go
package cart

import (
	"testing"
	"time"

	"github.com/socdefainder-oss/pronto-backend/internal/domain/coupon"
)

// couponTableValidator resolves codes against an in-memory coupon table,
// standing in for the DB-backed lookup.
type couponTableValidator struct {
	coupons map[string]*coupon.Coupon
}

func (v *couponTableValidator) Validate(code string, subtotal int64) (*coupon.Application, error) {
	c, ok := v.coupons[code]
	if !ok {
		return &coupon.Application{CouponCode: code, Message: "Invalid coupon code"}, nil
	}
	return c.Apply(subtotal, time.Now().UTC()), nil
}

func newCouponTestService() *Service {
	return &Service{
		couponService: &couponTableValidator{
			coupons: map[string]*coupon.Coupon{
				"WELCOME10": {
					Code:           "WELCOME10",
					DiscountType:   coupon.DiscountTypePercentage,
					DiscountValue:  10,
					MinOrderAmount: 2000,
					IsActive:       true,
				},
			},
		},
	}
}

func TestRefreshCouponTracksSubtotal(t *testing.T) {
	s := newCouponTestService()

	// Stored at apply time against a 5980 subtotal
	stored := &coupon.Application{CouponCode: "WELCOME10", DiscountAmount: 598, Applied: true}

	tests := []struct {
		name         string
		subtotal     int64
		wantApplied  bool
		wantDiscount int64
	}{
		{"unchanged cart", 5980, true, 598},
		{"item added", 8000, true, 800},
		{"item removed", 3000, true, 300},
		{"shrunk below minimum order", 1500, false, 0},
		{"grown back above minimum", 2500, true, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, discount, err := s.refreshCoupon(stored, tt.subtotal)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if app.Applied != tt.wantApplied {
				t.Errorf("Applied = %v, want %v", app.Applied, tt.wantApplied)
			}
			if discount != tt.wantDiscount {
				t.Errorf("discount = %d, want %d", discount, tt.wantDiscount)
			}
		})
	}
}

func TestRefreshCouponWithoutCoupon(t *testing.T) {
	s := newCouponTestService()

	app, discount, err := s.refreshCoupon(nil, 5980)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app != nil {
		t.Errorf("expected no application, got %+v", app)
	}
	if discount != 0 {
		t.Errorf("expected zero discount, got %d", discount)
	}
}

func TestRefreshCouponDeletedCode(t *testing.T) {
	s := newCouponTestService()

	stored := &coupon.Application{CouponCode: "GONE20", DiscountAmount: 1200, Applied: true}
	app, discount, err := s.refreshCoupon(stored, 6000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Applied {
		t.Error("a coupon removed from the table should no longer apply")
	}
	if discount != 0 {
		t.Errorf("expected zero discount, got %d", discount)
	}
}

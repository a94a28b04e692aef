// internal/domain/coupon/entity.go
package coupon

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DiscountType represents how a coupon discounts the order
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
)

// Coupon represents a discount code
type Coupon struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Code         string       `gorm:"uniqueIndex;not null;size:50" json:"code"`
	Description  string       `gorm:"size:255" json:"description"`
	DiscountType DiscountType `gorm:"not null;size:20" json:"discount_type"`

	// Percentage value (e.g. 10.0 for 10%) or fixed amount in cents,
	// depending on DiscountType
	DiscountValue float64 `gorm:"not null" json:"discount_value"`

	MinOrderAmount    int64          `gorm:"default:0" json:"min_order_amount"`    // In cents
	MaxDiscountAmount int64          `gorm:"default:0" json:"max_discount_amount"` // 0 = unlimited
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	ValidUntil        *time.Time     `json:"valid_until,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Coupon) TableName() string {
	return "coupons"
}

// Application represents the result of applying a coupon to a cart subtotal
type Application struct {
	CouponCode     string `json:"coupon_code"`
	DiscountAmount int64  `json:"discount_amount"` // In cents, >= 0
	Applied        bool   `json:"applied"`
	Message        string `json:"message,omitempty"`
}

// IsExpired reports whether the coupon is past its validity window
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ValidUntil != nil && now.After(*c.ValidUntil)
}

// DiscountFor computes the discount in cents for a given subtotal.
// Percentage discounts are capped by MaxDiscountAmount when set.
func (c *Coupon) DiscountFor(subtotal int64) int64 {
	var discount int64
	if c.DiscountType == DiscountTypePercentage {
		discount = int64(float64(subtotal) * c.DiscountValue / 100)
		if c.MaxDiscountAmount > 0 && discount > c.MaxDiscountAmount {
			discount = c.MaxDiscountAmount
		}
	} else {
		discount = int64(c.DiscountValue)
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

// Apply validates the coupon against a subtotal and produces an Application.
// Invalid coupons never error out: the result simply has Applied=false so
// checkout can proceed without a discount.
func (c *Coupon) Apply(subtotal int64, now time.Time) *Application {
	app := &Application{CouponCode: c.Code}

	if !c.IsActive {
		app.Message = "Coupon is no longer active"
		return app
	}
	if c.IsExpired(now) {
		app.Message = "Coupon has expired"
		return app
	}
	if subtotal < c.MinOrderAmount {
		app.Message = fmt.Sprintf("Minimum order amount of R$%.2f required", float64(c.MinOrderAmount)/100)
		return app
	}

	app.DiscountAmount = c.DiscountFor(subtotal)
	app.Applied = true
	app.Message = fmt.Sprintf("Coupon applied! You saved R$%.2f", float64(app.DiscountAmount)/100)
	return app
}

// internal/domain/coupon/service.go
package coupon

import (
	"fmt"
	"strings"
	"time"

	"github.com/socdefainder-oss/pronto-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles coupon business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new coupon service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CouponCreateRequest represents coupon creation data
type CouponCreateRequest struct {
	Code              string       `json:"code" binding:"required"`
	Description       string       `json:"description"`
	DiscountType      DiscountType `json:"discount_type" binding:"required,oneof=percentage fixed_amount"`
	DiscountValue     float64      `json:"discount_value" binding:"required,gt=0"`
	MinOrderAmount    int64        `json:"min_order_amount"`
	MaxDiscountAmount int64        `json:"max_discount_amount"`
	IsActive          *bool        `json:"is_active"`
	ValidUntil        *time.Time   `json:"valid_until"`
}

// Validate looks up a coupon code and applies it to a subtotal. An unknown
// code yields Applied=false with a message, never an error: the caller can
// always proceed without a coupon.
func (s *Service) Validate(code string, subtotal int64) (*Application, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return &Application{CouponCode: code, Message: "Coupon code is required"}, nil
	}

	var c Coupon
	result := s.db.Where("code = ?", normalized).First(&c)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return &Application{CouponCode: normalized, Message: "Invalid coupon code"}, nil
		}
		return nil, fmt.Errorf("failed to look up coupon: %w", result.Error)
	}

	return c.Apply(subtotal, time.Now().UTC()), nil
}

// GetCoupons lists all coupons for the admin surface
func (s *Service) GetCoupons() ([]Coupon, error) {
	var coupons []Coupon
	if err := s.db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve coupons: %w", err)
	}
	return coupons, nil
}

// CreateCoupon creates a new coupon
func (s *Service) CreateCoupon(req *CouponCreateRequest) (*Coupon, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	c := Coupon{
		Code:              strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:       req.Description,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		MinOrderAmount:    req.MinOrderAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		IsActive:          active,
		ValidUntil:        req.ValidUntil,
	}

	if c.Code == "" {
		return nil, fmt.Errorf("coupon code is required")
	}

	if err := s.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return &c, nil
}

// DeactivateCoupon turns a coupon off without deleting its history
func (s *Service) DeactivateCoupon(id uint) error {
	result := s.db.Model(&Coupon{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("coupon not found")
	}
	return nil
}

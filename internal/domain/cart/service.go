// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/socdefainder-oss/pronto-backend/internal/config"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/coupon"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/product"
)

// couponValidator is the slice of coupon.Service the cart needs
type couponValidator interface {
	Validate(code string, subtotal int64) (*coupon.Application, error)
}

// Service handles cart business logic. Carts belong to anonymous checkout
// sessions and live in Redis as JSON blobs with a TTL.
type Service struct {
	redisClient    *redis.Client
	config         *config.Config
	productService *product.Service
	couponService  couponValidator
}

// NewService creates a new cart service
func NewService(redisClient *redis.Client, cfg *config.Config, productService *product.Service, couponService *coupon.Service) *Service {
	return &Service{
		redisClient:    redisClient,
		config:         cfg,
		productService: productService,
		couponService:  couponService,
	}
}

// CartResponse represents a cart with items, applied coupon and totals
type CartResponse struct {
	SessionID     string              `json:"session_id"`
	Items         []SessionCartItem   `json:"items"`
	AppliedCoupon *coupon.Application `json:"applied_coupon,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	Totals        CartTotals          `json:"totals"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// ApplyCouponRequest represents coupon application request
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// SetNotesRequest represents free-text order notes
type SetNotesRequest struct {
	Notes string `json:"notes"`
}

// GetCart retrieves the cart for a session, with coupon discount applied
func (s *Service) GetCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, sessionCart)
}

// AddItem adds a menu item to the cart, snapshotting its current name and price
func (s *Service) AddItem(ctx context.Context, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	prod, err := s.productService.GetAvailableProduct(req.ProductID)
	if err != nil {
		return nil, err
	}

	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sessionCart.Add(SessionCartItem{
		ProductID:   prod.ID,
		ProductName: prod.Name,
		Price:       prod.Price,
		Quantity:    req.Quantity,
		AddedAt:     time.Now().UTC(),
	})

	if err := s.saveCart(ctx, sessionCart); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, sessionCart)
}

// UpdateItem sets a line's quantity; zero removes the line
func (s *Service) UpdateItem(ctx context.Context, sessionID string, productID uint, quantity int) (*CartResponse, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !sessionCart.SetQuantity(productID, quantity) {
		return nil, fmt.Errorf("item not found in cart")
	}

	if err := s.saveCart(ctx, sessionCart); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, sessionCart)
}

// RemoveItem removes a line from the cart
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID uint) (*CartResponse, error) {
	return s.UpdateItem(ctx, sessionID, productID, 0)
}

// Clear removes the cart, its coupon and its notes from Redis
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.redisClient.Del(ctx,
		cartKey(sessionID),
		couponKey(sessionID),
		notesKey(sessionID),
	).Err()
}

// ApplyCoupon validates a coupon against the current subtotal and stores the
// application for the session. A rejected coupon clears any stored one and
// reports why, without blocking checkout.
func (s *Service) ApplyCoupon(ctx context.Context, sessionID, code string) (*coupon.Application, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sessionCart.IsEmpty() {
		return nil, fmt.Errorf("cart is empty")
	}

	app, err := s.couponService.Validate(code, sessionCart.Subtotal())
	if err != nil {
		return nil, err
	}

	if !app.Applied {
		_ = s.redisClient.Del(ctx, couponKey(sessionID)).Err()
		return app, nil
	}

	data, err := json.Marshal(app)
	if err != nil {
		return nil, err
	}
	if err := s.redisClient.Set(ctx, couponKey(sessionID), data, s.config.Checkout.SessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store coupon: %w", err)
	}
	return app, nil
}

// RemoveCoupon removes the applied coupon, restoring the pre-discount total
func (s *Service) RemoveCoupon(ctx context.Context, sessionID string) error {
	return s.redisClient.Del(ctx, couponKey(sessionID)).Err()
}

// GetAppliedCoupon returns the stored coupon application, if any
func (s *Service) GetAppliedCoupon(ctx context.Context, sessionID string) *coupon.Application {
	data, err := s.redisClient.Get(ctx, couponKey(sessionID)).Result()
	if err != nil {
		return nil
	}
	var app coupon.Application
	if err := json.Unmarshal([]byte(data), &app); err != nil {
		return nil
	}
	return &app
}

// SetNotes stores free-text order notes for the session
func (s *Service) SetNotes(ctx context.Context, sessionID, notes string) error {
	if notes == "" {
		return s.redisClient.Del(ctx, notesKey(sessionID)).Err()
	}
	return s.redisClient.Set(ctx, notesKey(sessionID), notes, s.config.Checkout.SessionTTL).Err()
}

// GetNotes returns the stored order notes, if any
func (s *Service) GetNotes(ctx context.Context, sessionID string) string {
	notes, err := s.redisClient.Get(ctx, notesKey(sessionID)).Result()
	if err != nil {
		return ""
	}
	return notes
}

// Private helpers

func cartKey(sessionID string) string   { return fmt.Sprintf("cart:session:%s", sessionID) }
func couponKey(sessionID string) string { return fmt.Sprintf("coupon:session:%s", sessionID) }
func notesKey(sessionID string) string  { return fmt.Sprintf("notes:session:%s", sessionID) }

func (s *Service) loadCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	data, err := s.redisClient.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Items:     []SessionCartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(data), &sessionCart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &sessionCart, nil
}

func (s *Service) saveCart(ctx context.Context, sessionCart *SessionCart) error {
	// An emptied cart disappears instead of lingering as an empty blob
	if sessionCart.IsEmpty() {
		return s.redisClient.Del(ctx, cartKey(sessionCart.SessionID)).Err()
	}

	data, err := json.Marshal(sessionCart)
	if err != nil {
		return err
	}
	return s.redisClient.Set(ctx, cartKey(sessionCart.SessionID), data, s.config.Checkout.SessionTTL).Err()
}

// refreshCoupon re-checks a stored coupon against the current subtotal.
// The stored discount goes stale the moment the cart changes, so the code
// is revalidated on every read. A coupon that no longer qualifies stays
// on the session with Applied=false and contributes no discount; it
// qualifies again if the cart grows back.
func (s *Service) refreshCoupon(app *coupon.Application, subtotal int64) (*coupon.Application, int64, error) {
	if app == nil {
		return nil, 0, nil
	}

	refreshed, err := s.couponService.Validate(app.CouponCode, subtotal)
	if err != nil {
		return nil, 0, err
	}
	if !refreshed.Applied {
		return refreshed, 0, nil
	}
	return refreshed, refreshed.DiscountAmount, nil
}

func (s *Service) buildResponse(ctx context.Context, sessionCart *SessionCart) (*CartResponse, error) {
	app, discount, err := s.refreshCoupon(s.GetAppliedCoupon(ctx, sessionCart.SessionID), sessionCart.Subtotal())
	if err != nil {
		return nil, err
	}

	return &CartResponse{
		SessionID:     sessionCart.SessionID,
		Items:         sessionCart.Items,
		AppliedCoupon: app,
		Notes:         s.GetNotes(ctx, sessionCart.SessionID),
		Totals:        sessionCart.Totals(discount),
		CreatedAt:     sessionCart.CreatedAt,
		UpdatedAt:     sessionCart.UpdatedAt,
	}, nil
}

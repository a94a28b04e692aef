// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/socdefainder-oss/pronto-backend/internal/config"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/cart"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/order"
)

// PaymentSessionCreator opens a payment-provider session for an order
// and returns the customer-facing redirect URL.
type PaymentSessionCreator interface {
	CreateCheckoutSession(ctx context.Context, o *order.Order) (string, error)
}

// OrderNotifier announces a freshly placed order to the staff
type OrderNotifier interface {
	NotifyNewOrder(ctx context.Context, o *order.Order)
}

// Service drives the checkout wizard. Wizard state lives in Redis
// next to the cart, keyed by the same session cookie.
type Service struct {
	redisClient  *redis.Client
	config       *config.Config
	cartService  *cart.Service
	orderService *order.Service
	payments     PaymentSessionCreator
	notifier     OrderNotifier
	logger       *logrus.Logger
}

// NewService creates a new checkout service. notifier may be nil.
func NewService(
	redisClient *redis.Client,
	cfg *config.Config,
	cartService *cart.Service,
	orderService *order.Service,
	payments PaymentSessionCreator,
	notifier OrderNotifier,
	logger *logrus.Logger,
) *Service {
	return &Service{
		redisClient:  redisClient,
		config:       cfg,
		cartService:  cartService,
		orderService: orderService,
		payments:     payments,
		notifier:     notifier,
		logger:       logger,
	}
}

// SubmitAddressRequest is the address step payload
type SubmitAddressRequest struct {
	DeliveryType DeliveryType `json:"delivery_type" binding:"required,oneof=delivery pickup"`
	Address      *Address     `json:"address"`
}

// SubmitPaymentRequest is the payment step payload
type SubmitPaymentRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required"`
	CardBrand     CardBrand     `json:"card_brand"`
}

// SubmitCustomerRequest is the final step payload
type SubmitCustomerRequest struct {
	Customer Customer `json:"customer" binding:"required"`
}

// SubmitResult is the outcome of placing an order. PaymentErr is set
// when the order was created but the payment session could not be
// opened; the order is kept either way.
type SubmitResult struct {
	Order       *order.Order `json:"order"`
	RedirectURL string       `json:"redirect_url,omitempty"`
	PaymentErr  *Error       `json:"payment_error,omitempty"`
}

func (s *Service) stateKey(sessionID string) string {
	return fmt.Sprintf("checkout:session:%s", sessionID)
}

// GetState loads the wizard state for a session, starting a new one
// at the cart step if none exists.
func (s *Service) GetState(ctx context.Context, sessionID string) (*State, error) {
	data, err := s.redisClient.Get(ctx, s.stateKey(sessionID)).Result()
	if err == redis.Nil {
		return NewState(sessionID), nil
	}
	if err != nil {
		return nil, NewNetworkError(err)
	}

	var state State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		// Corrupt state restarts the wizard rather than blocking it
		s.logger.WithField("session_id", sessionID).
			WithError(err).Warn("Discarding unreadable checkout state")
		return NewState(sessionID), nil
	}
	return &state, nil
}

func (s *Service) saveState(ctx context.Context, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return NewNetworkError(err)
	}
	key := s.stateKey(state.SessionID)
	if err := s.redisClient.Set(ctx, key, data, s.config.Checkout.SessionTTL).Err(); err != nil {
		return NewNetworkError(err)
	}
	return nil
}

func (s *Service) clearState(ctx context.Context, sessionID string) {
	if err := s.redisClient.Del(ctx, s.stateKey(sessionID)).Err(); err != nil {
		s.logger.WithField("session_id", sessionID).
			WithError(err).Warn("Failed to clear checkout state")
	}
}

// SubmitCart confirms the cart step and advances to the address step
func (s *Service) SubmitCart(ctx context.Context, sessionID string) (*State, error) {
	state, err := s.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cartResp, err := s.cartService.GetCart(ctx, sessionID)
	if err != nil {
		return nil, NewNetworkError(err)
	}

	if err := state.ApplyCart(len(cartResp.Items) == 0); err != nil {
		return nil, err
	}
	if err := s.saveState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SubmitAddress records the delivery choice and advances to payment
func (s *Service) SubmitAddress(ctx context.Context, sessionID string, req *SubmitAddressRequest) (*State, error) {
	state, err := s.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := state.ApplyAddress(req.DeliveryType, req.Address); err != nil {
		return nil, err
	}
	if err := s.saveState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SubmitPayment records the payment choice and advances to customer
// details
func (s *Service) SubmitPayment(ctx context.Context, sessionID string, req *SubmitPaymentRequest) (*State, error) {
	state, err := s.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := state.ApplyPayment(req.PaymentMethod, req.CardBrand); err != nil {
		return nil, err
	}
	if err := s.saveState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Back steps the wizard towards the cart
func (s *Service) Back(ctx context.Context, sessionID string) (*State, error) {
	state, err := s.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state.Back()
	if err := s.saveState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SubmitCustomer records contact details and places the order. The
// cart and wizard state are cleared once the order exists. For online
// payment methods a provider session is opened afterwards; if that
// fails the order stays and the failure is reported in the result.
func (s *Service) SubmitCustomer(ctx context.Context, sessionID string, req *SubmitCustomerRequest) (*SubmitResult, error) {
	state, err := s.GetState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := state.ApplyCustomer(&req.Customer); err != nil {
		return nil, err
	}
	if !state.ReadyToSubmit() {
		return nil, NewValidationError("Complete all checkout steps first")
	}

	cartResp, err := s.cartService.GetCart(ctx, sessionID)
	if err != nil {
		return nil, NewNetworkError(err)
	}
	if len(cartResp.Items) == 0 {
		return nil, NewValidationError("Your cart is empty")
	}

	input := s.buildOrderInput(state, cartResp)

	placed, err := s.orderService.CreateOrder(ctx, input)
	if err != nil {
		return nil, NewNetworkError(err)
	}

	// The order exists now. Session cleanup and payment bookkeeping
	// must not undo it.
	if err := s.cartService.Clear(ctx, sessionID); err != nil {
		s.logger.WithField("session_id", sessionID).
			WithError(err).Warn("Failed to clear cart after order")
	}
	s.clearState(ctx, sessionID)

	if s.notifier != nil {
		s.notifier.NotifyNewOrder(ctx, placed)
	}

	result := &SubmitResult{Order: placed}

	if state.PaymentMethod.RequiresPaymentSession() {
		if s.payments == nil {
			result.PaymentErr = NewPaymentSessionError(fmt.Errorf("payment provider not configured"))
			return result, nil
		}
		redirectURL, payErr := s.payments.CreateCheckoutSession(ctx, placed)
		if payErr != nil {
			s.logger.WithFields(logrus.Fields{
				"order_id":     placed.ID,
				"order_number": placed.OrderNumber,
			}).WithError(payErr).Error("Payment session creation failed")
			result.PaymentErr = NewPaymentSessionError(payErr)
		} else {
			result.RedirectURL = redirectURL
		}
	}

	return result, nil
}

func (s *Service) buildOrderInput(state *State, cartResp *cart.CartResponse) *order.CreateOrderInput {
	input := &order.CreateOrderInput{
		CustomerName:  state.Customer.Name,
		CustomerPhone: state.Customer.Phone,
		CustomerEmail: state.Customer.Email,

		DeliveryType: order.DeliveryType(state.DeliveryType),

		PaymentMethod:   string(state.PaymentMethod),
		PaymentCategory: string(state.PaymentMethod.Category()),
		CardBrand:       string(state.CardBrand),

		SubtotalAmount:    cartResp.Totals.SubTotal,
		DiscountAmount:    cartResp.Totals.DiscountAmount,
		DeliveryFeeAmount: s.config.Checkout.DeliveryFeeCents,
		TotalAmount:       cartResp.Totals.TotalAmount + s.config.Checkout.DeliveryFeeCents,

		Notes: cartResp.Notes,
	}

	if state.Address != nil {
		input.Address = &order.Address{
			Street:     state.Address.Street,
			Number:     state.Address.Number,
			Complement: state.Address.Complement,
			District:   state.Address.District,
			City:       state.Address.City,
			State:      state.Address.State,
			ZipCode:    state.Address.ZipCode,
		}
	}

	if cartResp.AppliedCoupon != nil && cartResp.AppliedCoupon.Applied {
		input.CouponCode = cartResp.AppliedCoupon.CouponCode
	}

	for _, item := range cartResp.Items {
		input.Items = append(input.Items, order.CreateOrderItemInput{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return input
}

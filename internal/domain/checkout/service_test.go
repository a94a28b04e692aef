package checkout

import (
	"testing"

	"github.com/socdefainder-oss/pronto-backend/internal/config"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/cart"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/coupon"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/order"
)

func TestBuildOrderInput(t *testing.T) {
	cfg := &config.Config{
		Checkout: config.CheckoutConfig{
			DeliveryFeeCents: 0,
			Currency:         "BRL",
		},
	}
	s := &Service{config: cfg}

	st := NewState("s1")
	_ = st.ApplyCart(false)
	_ = st.ApplyAddress(DeliveryTypeDelivery, &Address{
		Street: "Rua das Flores", Number: "123", District: "Centro",
		City: "São Paulo", State: "SP",
	})
	_ = st.ApplyPayment(PaymentMethodCreditCardDelivery, CardBrandVisa)
	_ = st.ApplyCustomer(&Customer{Name: "Maria Silva", Phone: "11987654321"})

	cartResp := &cart.CartResponse{
		SessionID: "s1",
		Items: []cart.SessionCartItem{
			{ProductID: 1, ProductName: "Classic Burger", Price: 2990, Quantity: 2},
		},
		AppliedCoupon: &coupon.Application{CouponCode: "WELCOME10", DiscountAmount: 500, Applied: true},
		Notes:         "No onions",
		Totals: cart.CartTotals{
			ItemCount:      1,
			TotalQuantity:  2,
			SubTotal:       5980,
			DiscountAmount: 500,
			TotalAmount:    5480,
		},
	}

	input := s.buildOrderInput(st, cartResp)

	if input.CustomerName != "Maria Silva" {
		t.Errorf("CustomerName = %s", input.CustomerName)
	}
	if input.DeliveryType != order.DeliveryTypeDelivery {
		t.Errorf("DeliveryType = %s", input.DeliveryType)
	}
	if input.Address == nil || input.Address.City != "São Paulo" {
		t.Error("delivery address should carry over")
	}
	if input.PaymentMethod != "credit_card_delivery" || input.PaymentCategory != "delivery" {
		t.Errorf("payment = %s/%s", input.PaymentMethod, input.PaymentCategory)
	}
	if input.CardBrand != "visa" {
		t.Errorf("CardBrand = %s", input.CardBrand)
	}
	if input.SubtotalAmount != 5980 || input.DiscountAmount != 500 || input.TotalAmount != 5480 {
		t.Errorf("amounts = %d/%d/%d, want 5980/500/5480",
			input.SubtotalAmount, input.DiscountAmount, input.TotalAmount)
	}
	if input.CouponCode != "WELCOME10" {
		t.Errorf("CouponCode = %s", input.CouponCode)
	}
	if input.Notes != "No onions" {
		t.Errorf("Notes = %s", input.Notes)
	}
	if len(input.Items) != 1 || input.Items[0].Name != "Classic Burger" || input.Items[0].Quantity != 2 {
		t.Errorf("unexpected items: %+v", input.Items)
	}
}

func TestBuildOrderInputPickupSkipsAddress(t *testing.T) {
	cfg := &config.Config{Checkout: config.CheckoutConfig{Currency: "BRL"}}
	s := &Service{config: cfg}

	st := NewState("s1")
	_ = st.ApplyCart(false)
	_ = st.ApplyAddress(DeliveryTypePickup, nil)
	_ = st.ApplyPayment(PaymentMethodPix, "")
	_ = st.ApplyCustomer(&Customer{Name: "João Souza", Phone: "11987654321"})

	cartResp := &cart.CartResponse{
		SessionID: "s1",
		Items: []cart.SessionCartItem{
			{ProductID: 2, ProductName: "Margherita", Price: 4490, Quantity: 1},
		},
		Totals: cart.CartTotals{ItemCount: 1, TotalQuantity: 1, SubTotal: 4490, TotalAmount: 4490},
	}

	input := s.buildOrderInput(st, cartResp)

	if input.Address != nil {
		t.Error("pickup order should not carry an address")
	}
	if input.DeliveryType != order.DeliveryTypePickup {
		t.Errorf("DeliveryType = %s", input.DeliveryType)
	}
	if input.PaymentCategory != "online" {
		t.Errorf("PaymentCategory = %s, want online", input.PaymentCategory)
	}
	if input.CouponCode != "" {
		t.Errorf("CouponCode should be empty, got %s", input.CouponCode)
	}
}

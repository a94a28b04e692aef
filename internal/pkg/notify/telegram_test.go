package notify

import (
	"strings"
	"testing"

	"github.com/socdefainder-oss/pronto-backend/internal/domain/order"
)

func TestBuildOrderCardDelivery(t *testing.T) {
	o := &order.Order{
		OrderNumber:   "ORD-20250601-00042",
		CustomerName:  "Maria Silva",
		CustomerPhone: "(11) 98765-4321",
		DeliveryType:  order.DeliveryTypeDelivery,
		Address: &order.Address{
			Street:   "Rua das Flores",
			Number:   "123",
			District: "Centro",
			City:     "São Paulo",
			State:    "SP",
		},
		PaymentMethod:  "credit_card_delivery",
		CardBrand:      "visa",
		DiscountAmount: 500,
		CouponCode:     "WELCOME10",
		TotalAmount:    5480,
		Notes:          "No onions please",
		Items: []order.OrderItem{
			{Name: "Classic Burger", Quantity: 2, TotalPrice: 5980},
		},
	}

	card := BuildOrderCard(o)

	for _, want := range []string{
		"ORD-20250601-00042",
		"Maria Silva",
		"Rua das Flores, 123",
		"2x Classic Burger",
		"R$ 54.80",
		"WELCOME10",
		"credit_card_delivery (visa)",
		"No onions please",
	} {
		if !strings.Contains(card, want) {
			t.Errorf("order card should contain %q:\n%s", want, card)
		}
	}
}

func TestBuildOrderCardPickup(t *testing.T) {
	o := &order.Order{
		OrderNumber:   "ORD-20250601-00043",
		CustomerName:  "João Souza",
		CustomerPhone: "11987654321",
		DeliveryType:  order.DeliveryTypePickup,
		PaymentMethod: "pix",
		TotalAmount:   2990,
		Items: []order.OrderItem{
			{Name: "Margherita", Quantity: 1, TotalPrice: 2990},
		},
	}

	card := BuildOrderCard(o)

	if !strings.Contains(card, "Pickup") {
		t.Errorf("pickup order card should mention pickup:\n%s", card)
	}
	if strings.Contains(card, "Deliver to") {
		t.Errorf("pickup order card should not contain a delivery address:\n%s", card)
	}
	if strings.Contains(card, "Discount") {
		t.Errorf("card without discount should not mention one:\n%s", card)
	}
}

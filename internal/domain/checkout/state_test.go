package checkout

import (
	"errors"
	"testing"
)

func validAddress() *Address {
	return &Address{
		Street:   "Rua das Flores",
		Number:   "123",
		District: "Centro",
		City:     "São Paulo",
		State:    "SP",
	}
}

func validCustomer() *Customer {
	return &Customer{
		Name:  "Maria Silva",
		Phone: "(11) 98765-4321",
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}
	var checkoutErr *Error
	if !errors.As(err, &checkoutErr) {
		t.Fatalf("expected *checkout.Error, got %T", err)
	}
	if checkoutErr.Code != ErrCodeValidation {
		t.Errorf("expected code %s, got %s", ErrCodeValidation, checkoutErr.Code)
	}
}

func TestWizardHappyPathDelivery(t *testing.T) {
	st := NewState("s1")

	if err := st.ApplyCart(false); err != nil {
		t.Fatalf("ApplyCart: %v", err)
	}
	if st.Step != StepAddress {
		t.Fatalf("expected step %s, got %s", StepAddress, st.Step)
	}

	if err := st.ApplyAddress(DeliveryTypeDelivery, validAddress()); err != nil {
		t.Fatalf("ApplyAddress: %v", err)
	}
	if st.Step != StepPayment {
		t.Fatalf("expected step %s, got %s", StepPayment, st.Step)
	}

	if err := st.ApplyPayment(PaymentMethodPix, ""); err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}
	if st.Step != StepCustomer {
		t.Fatalf("expected step %s, got %s", StepCustomer, st.Step)
	}

	if err := st.ApplyCustomer(validCustomer()); err != nil {
		t.Fatalf("ApplyCustomer: %v", err)
	}
	if !st.ReadyToSubmit() {
		t.Error("wizard should be ready to submit")
	}
}

func TestEmptyCartBlocksWizard(t *testing.T) {
	st := NewState("s1")
	assertValidationError(t, st.ApplyCart(true))
	if st.Step != StepCart {
		t.Errorf("step should stay at %s, got %s", StepCart, st.Step)
	}
}

func TestDeliveryRequiresAddress(t *testing.T) {
	st := NewState("s1")
	_ = st.ApplyCart(false)

	assertValidationError(t, st.ApplyAddress(DeliveryTypeDelivery, nil))

	incomplete := validAddress()
	incomplete.Street = ""
	assertValidationError(t, st.ApplyAddress(DeliveryTypeDelivery, incomplete))

	if st.Step != StepAddress {
		t.Errorf("step should stay at %s, got %s", StepAddress, st.Step)
	}
}

func TestPickupClearsAddress(t *testing.T) {
	st := NewState("s1")
	_ = st.ApplyCart(false)

	if err := st.ApplyAddress(DeliveryTypeDelivery, validAddress()); err != nil {
		t.Fatalf("ApplyAddress: %v", err)
	}

	// Customer goes back and switches to pickup
	st.Back()
	if err := st.ApplyAddress(DeliveryTypePickup, nil); err != nil {
		t.Fatalf("ApplyAddress pickup: %v", err)
	}
	if st.Address != nil {
		t.Error("pickup should clear the previously entered address")
	}
	if st.DeliveryType != DeliveryTypePickup {
		t.Errorf("delivery type = %s, want %s", st.DeliveryType, DeliveryTypePickup)
	}
}

func TestPaymentBeforeAddressBlocked(t *testing.T) {
	st := NewState("s1")
	_ = st.ApplyCart(false)
	assertValidationError(t, st.ApplyPayment(PaymentMethodPix, ""))
}

func TestCardBrandRequirement(t *testing.T) {
	tests := []struct {
		method  PaymentMethod
		brand   CardBrand
		wantErr bool
	}{
		{PaymentMethodCreditCardDelivery, "", true},
		{PaymentMethodCreditCardDelivery, "amex", true},
		{PaymentMethodCreditCardDelivery, CardBrandVisa, false},
		{PaymentMethodDebitDelivery, "", true},
		{PaymentMethodDebitDelivery, CardBrandElo, false},
		{PaymentMethodPix, "", false},
		{PaymentMethodCash, "", false},
		{PaymentMethodMealVoucher, "", false},
		{"bitcoin", "", true},
	}
	for _, tt := range tests {
		st := NewState("s1")
		_ = st.ApplyCart(false)
		_ = st.ApplyAddress(DeliveryTypePickup, nil)

		err := st.ApplyPayment(tt.method, tt.brand)
		if tt.wantErr {
			assertValidationError(t, err)
		} else if err != nil {
			t.Errorf("ApplyPayment(%s, %s) unexpected error: %v", tt.method, tt.brand, err)
		}
	}
}

func TestCardBrandClearedForNonCardMethods(t *testing.T) {
	st := NewState("s1")
	_ = st.ApplyCart(false)
	_ = st.ApplyAddress(DeliveryTypePickup, nil)

	if err := st.ApplyPayment(PaymentMethodCreditCardDelivery, CardBrandMastercard); err != nil {
		t.Fatalf("ApplyPayment: %v", err)
	}

	// Customer goes back and switches to cash
	st.Back()
	if err := st.ApplyPayment(PaymentMethodCash, ""); err != nil {
		t.Fatalf("ApplyPayment cash: %v", err)
	}
	if st.CardBrand != "" {
		t.Errorf("card brand should be cleared, got %s", st.CardBrand)
	}
}

func TestPaymentMethodCategories(t *testing.T) {
	tests := []struct {
		method       PaymentMethod
		category     PaymentCategory
		needsSession bool
	}{
		{PaymentMethodPix, PaymentCategoryOnline, true},
		{PaymentMethodCreditCard, PaymentCategoryOnline, true},
		{PaymentMethodCash, PaymentCategoryDelivery, false},
		{PaymentMethodCreditCardDelivery, PaymentCategoryDelivery, false},
		{PaymentMethodDebitDelivery, PaymentCategoryDelivery, false},
		{PaymentMethodMealVoucher, PaymentCategoryDelivery, false},
		{PaymentMethodFoodVoucher, PaymentCategoryDelivery, false},
	}
	for _, tt := range tests {
		if got := tt.method.Category(); got != tt.category {
			t.Errorf("%s.Category() = %s, want %s", tt.method, got, tt.category)
		}
		if got := tt.method.RequiresPaymentSession(); got != tt.needsSession {
			t.Errorf("%s.RequiresPaymentSession() = %v, want %v", tt.method, got, tt.needsSession)
		}
	}
}

func TestCustomerValidation(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		wantErr  bool
	}{
		{"valid", Customer{Name: "Maria Silva", Phone: "(11) 98765-4321"}, false},
		{"missing name", Customer{Phone: "(11) 98765-4321"}, true},
		{"missing phone", Customer{Name: "Maria Silva"}, true},
		{"phone too short", Customer{Name: "Maria Silva", Phone: "9876"}, true},
		{"digits only phone", Customer{Name: "Maria Silva", Phone: "11987654321"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.customer.Validate()
			if tt.wantErr {
				assertValidationError(t, err)
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBackNavigation(t *testing.T) {
	st := NewState("s1")
	_ = st.ApplyCart(false)
	_ = st.ApplyAddress(DeliveryTypeDelivery, validAddress())
	_ = st.ApplyPayment(PaymentMethodPix, "")

	st.Back()
	if st.Step != StepPayment {
		t.Errorf("step = %s, want %s", st.Step, StepPayment)
	}
	// Collected data survives going back
	if st.Address == nil || st.PaymentMethod != PaymentMethodPix {
		t.Error("going back should not discard collected data")
	}

	st.Back()
	st.Back()
	if st.Step != StepCart {
		t.Errorf("step = %s, want %s", st.Step, StepCart)
	}
	st.Back()
	if st.Step != StepCart {
		t.Error("Back from cart should stay at cart")
	}
}

func TestReadyToSubmit(t *testing.T) {
	st := NewState("s1")
	if st.ReadyToSubmit() {
		t.Error("fresh wizard should not be ready")
	}

	_ = st.ApplyCart(false)
	_ = st.ApplyAddress(DeliveryTypePickup, nil)
	_ = st.ApplyPayment(PaymentMethodCash, "")
	if st.ReadyToSubmit() {
		t.Error("wizard without customer should not be ready")
	}

	_ = st.ApplyCustomer(validCustomer())
	if !st.ReadyToSubmit() {
		t.Error("completed wizard should be ready")
	}
}

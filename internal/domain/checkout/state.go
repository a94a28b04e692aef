// internal/domain/checkout/state.go
package checkout

import (
	"strings"
	"time"
)

// Step is one screen of the checkout wizard
type Step string

const (
	StepCart     Step = "cart"
	StepAddress  Step = "address"
	StepPayment  Step = "payment"
	StepCustomer Step = "customer"
)

// DeliveryType mirrors order.DeliveryType at the wizard level
type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

// PaymentMethod is a supported payment option
type PaymentMethod string

const (
	PaymentMethodPix                PaymentMethod = "pix"
	PaymentMethodCreditCard         PaymentMethod = "credit_card"
	PaymentMethodCash               PaymentMethod = "cash"
	PaymentMethodCreditCardDelivery PaymentMethod = "credit_card_delivery"
	PaymentMethodDebitDelivery      PaymentMethod = "debit_delivery"
	PaymentMethodMealVoucher        PaymentMethod = "meal_voucher"
	PaymentMethodFoodVoucher        PaymentMethod = "food_voucher"
)

// PaymentCategory separates methods settled online from those settled
// at the door
type PaymentCategory string

const (
	PaymentCategoryOnline   PaymentCategory = "online"
	PaymentCategoryDelivery PaymentCategory = "delivery"
)

var paymentCategories = map[PaymentMethod]PaymentCategory{
	PaymentMethodPix:                PaymentCategoryOnline,
	PaymentMethodCreditCard:         PaymentCategoryOnline,
	PaymentMethodCash:               PaymentCategoryDelivery,
	PaymentMethodCreditCardDelivery: PaymentCategoryDelivery,
	PaymentMethodDebitDelivery:      PaymentCategoryDelivery,
	PaymentMethodMealVoucher:        PaymentCategoryDelivery,
	PaymentMethodFoodVoucher:        PaymentCategoryDelivery,
}

// IsValid reports whether the method is one we accept
func (m PaymentMethod) IsValid() bool {
	_, ok := paymentCategories[m]
	return ok
}

// Category returns whether the method settles online or on delivery
func (m PaymentMethod) Category() PaymentCategory {
	return paymentCategories[m]
}

// RequiresCardBrand reports whether the courier needs to bring a
// specific card machine
func (m PaymentMethod) RequiresCardBrand() bool {
	return m == PaymentMethodCreditCardDelivery || m == PaymentMethodDebitDelivery
}

// RequiresPaymentSession reports whether submitting the order must
// open a payment-provider session
func (m PaymentMethod) RequiresPaymentSession() bool {
	return m.Category() == PaymentCategoryOnline
}

// CardBrand is the card network for machine-on-delivery payments
type CardBrand string

const (
	CardBrandVisa       CardBrand = "visa"
	CardBrandMastercard CardBrand = "mastercard"
	CardBrandElo        CardBrand = "elo"
)

// IsValid reports whether the brand is one we carry machines for
func (b CardBrand) IsValid() bool {
	switch b {
	case CardBrandVisa, CardBrandMastercard, CardBrandElo:
		return true
	}
	return false
}

// Address is the delivery address collected by the wizard
type Address struct {
	Street     string `json:"street" binding:"required"`
	Number     string `json:"number" binding:"required"`
	Complement string `json:"complement"`
	District   string `json:"district" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required,len=2"`
	ZipCode    string `json:"zip_code"`
}

// Validate checks required fields beyond what binding covers
func (a *Address) Validate() error {
	if strings.TrimSpace(a.Street) == "" {
		return NewValidationError("Street is required")
	}
	if strings.TrimSpace(a.Number) == "" {
		return NewValidationError("Number is required")
	}
	if strings.TrimSpace(a.District) == "" {
		return NewValidationError("District is required")
	}
	if strings.TrimSpace(a.City) == "" {
		return NewValidationError("City is required")
	}
	if len(strings.TrimSpace(a.State)) != 2 {
		return NewValidationError("State must be a two-letter code")
	}
	return nil
}

// Customer is the contact information collected at the final step
type Customer struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

// Validate checks the contact information
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("Name is required")
	}
	phone := strings.TrimSpace(c.Phone)
	if phone == "" {
		return NewValidationError("Phone is required")
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 10 {
		return NewValidationError("Phone must include area code")
	}
	return nil
}

// State is the wizard's progress for one session. It is persisted in
// Redis between steps and discarded once the order is placed.
type State struct {
	SessionID string `json:"session_id"`
	Step      Step   `json:"step"`

	DeliveryType DeliveryType `json:"delivery_type,omitempty"`
	Address      *Address     `json:"address,omitempty"`

	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	CardBrand     CardBrand     `json:"card_brand,omitempty"`

	Customer *Customer `json:"customer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewState starts a wizard at the cart step
func NewState(sessionID string) *State {
	now := time.Now().UTC()
	return &State{
		SessionID: sessionID,
		Step:      StepCart,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyCart advances past the cart review step. The cart itself lives
// in the cart store; this step only confirms it is non-empty.
func (st *State) ApplyCart(cartEmpty bool) error {
	if cartEmpty {
		return NewValidationError("Your cart is empty")
	}
	st.Step = StepAddress
	st.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyAddress records the delivery choice. Pickup clears any
// previously entered address.
func (st *State) ApplyAddress(deliveryType DeliveryType, addr *Address) error {
	if st.Step != StepAddress && st.Step != StepPayment && st.Step != StepCustomer {
		return NewValidationError("Review your cart before choosing delivery")
	}

	switch deliveryType {
	case DeliveryTypePickup:
		st.DeliveryType = DeliveryTypePickup
		st.Address = nil
	case DeliveryTypeDelivery:
		if addr == nil {
			return NewValidationError("Delivery address is required")
		}
		if err := addr.Validate(); err != nil {
			return err
		}
		st.DeliveryType = DeliveryTypeDelivery
		st.Address = addr
	default:
		return NewValidationError("Choose delivery or pickup")
	}

	st.Step = StepPayment
	st.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyPayment records the payment choice. Card brand is only
// meaningful for machine-on-delivery methods and is cleared otherwise.
func (st *State) ApplyPayment(method PaymentMethod, brand CardBrand) error {
	if st.Step != StepPayment && st.Step != StepCustomer {
		return NewValidationError("Choose delivery before payment")
	}

	if !method.IsValid() {
		return NewValidationError("Unsupported payment method")
	}

	if method.RequiresCardBrand() {
		if brand == "" {
			return NewValidationError("Card brand is required for card on delivery")
		}
		if !brand.IsValid() {
			return NewValidationError("Unsupported card brand")
		}
		st.CardBrand = brand
	} else {
		st.CardBrand = ""
	}

	st.PaymentMethod = method
	st.Step = StepCustomer
	st.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyCustomer records contact details and marks the wizard ready to
// submit
func (st *State) ApplyCustomer(customer *Customer) error {
	if st.Step != StepCustomer {
		return NewValidationError("Choose payment before your contact details")
	}
	if customer == nil {
		return NewValidationError("Contact details are required")
	}
	if err := customer.Validate(); err != nil {
		return err
	}
	st.Customer = customer
	st.UpdatedAt = time.Now().UTC()
	return nil
}

// Back moves one step towards the cart, keeping collected data so the
// customer can revise a choice without retyping everything.
func (st *State) Back() {
	switch st.Step {
	case StepAddress:
		st.Step = StepCart
	case StepPayment:
		st.Step = StepAddress
	case StepCustomer:
		st.Step = StepPayment
	}
	st.UpdatedAt = time.Now().UTC()
}

// ReadyToSubmit reports whether every step has valid data
func (st *State) ReadyToSubmit() bool {
	if st.Step != StepCustomer || st.Customer == nil {
		return false
	}
	if st.DeliveryType == "" || !st.PaymentMethod.IsValid() {
		return false
	}
	if st.DeliveryType == DeliveryTypeDelivery && st.Address == nil {
		return false
	}
	if st.PaymentMethod.RequiresCardBrand() && !st.CardBrand.IsValid() {
		return false
	}
	return true
}

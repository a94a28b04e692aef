// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusOnDelivery PaymentStatus = "on_delivery"
)

// DeliveryType is how the customer receives the order
type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

// Order represents the order entity
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderNumber   string        `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	Status        OrderStatus   `gorm:"not null;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"not null;default:'pending'" json:"payment_status"`

	// Customer
	CustomerName  string `gorm:"not null;size:255" json:"customer_name"`
	CustomerPhone string `gorm:"not null;size:30" json:"customer_phone"`
	CustomerEmail string `gorm:"size:255" json:"customer_email"`

	// Delivery
	DeliveryType DeliveryType `gorm:"not null;size:10" json:"delivery_type"`
	Address      *Address     `gorm:"embedded;embeddedPrefix:delivery_" json:"address,omitempty"`

	// Payment
	PaymentMethod   string `gorm:"not null;size:30" json:"payment_method"`
	PaymentCategory string `gorm:"not null;size:10" json:"payment_category"` // online | delivery
	CardBrand       string `gorm:"size:20" json:"card_brand,omitempty"`

	// Financial information, in cents
	SubtotalAmount    int64 `gorm:"not null" json:"subtotal_amount"`
	DiscountAmount    int64 `gorm:"default:0" json:"discount_amount"`
	DeliveryFeeAmount int64 `gorm:"default:0" json:"delivery_fee_amount"`
	TotalAmount       int64 `gorm:"not null" json:"total_amount"`

	Currency   string `gorm:"size:3;default:'BRL'" json:"currency"`
	Notes      string `gorm:"type:text" json:"notes"`
	CouponCode string `gorm:"size:50" json:"coupon_code"`

	// Timestamps
	ConfirmedAt *time.Time     `json:"confirmed_at"`
	ReadyAt     *time.Time     `json:"ready_at"`
	DeliveredAt *time.Time     `json:"delivered_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	Payments      []Payment            `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"payments,omitempty"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem represents items in an order
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      int64     `gorm:"not null" json:"price"`       // Price per unit in cents
	TotalPrice int64     `gorm:"not null" json:"total_price"` // Quantity * Price
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Payment represents payment-provider sessions attached to an order
type Payment struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	OrderID           uint          `gorm:"not null;index" json:"order_id"`
	PaymentMethod     string        `gorm:"not null;size:30" json:"payment_method"`
	PaymentProviderID string        `gorm:"size:255" json:"payment_provider_id"` // External session ID
	RedirectURL       string        `gorm:"size:500" json:"redirect_url"`
	Amount            int64         `gorm:"not null" json:"amount"` // In cents
	Currency          string        `gorm:"size:3;default:'BRL'" json:"currency"`
	Status            PaymentStatus `gorm:"not null" json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// OrderStatusHistory tracks order status changes
type OrderStatusHistory struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"not null" json:"status"`
	Comment   string      `gorm:"type:text" json:"comment"`
	CreatedBy uint        `gorm:"index" json:"created_by"` // Staff ID, 0 for the system
	CreatedAt time.Time   `json:"created_at"`
}

// Address represents a delivery address (embedded in Order, nil for pickup)
type Address struct {
	Street     string `gorm:"size:255" json:"street"`
	Number     string `gorm:"size:20" json:"number"`
	Complement string `gorm:"size:255" json:"complement,omitempty"`
	District   string `gorm:"size:100" json:"district"`
	City       string `gorm:"size:100" json:"city"`
	State      string `gorm:"size:2" json:"state"`
	ZipCode    string `gorm:"size:20" json:"zip_code,omitempty"`
}

// TableName overrides
func (Order) TableName() string              { return "orders" }
func (OrderItem) TableName() string          { return "order_items" }
func (Payment) TableName() string            { return "payments" }
func (OrderStatusHistory) TableName() string { return "order_status_history" }

// kitchenStatuses are the statuses shown on the kitchen display
var kitchenStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
}

// validTransitions is the order lifecycle. pending orders move forward
// through the kitchen; pickup orders skip delivering.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusReady},
	OrderStatusReady:      {OrderStatusDelivering, OrderStatusDelivered},
	OrderStatusDelivering: {OrderStatusDelivered},
}

// ValidStatusTransition reports whether from -> to is an allowed transition
func ValidStatusTransition(from, to OrderStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// GenerateOrderNumber builds a unique order number.
// Format: ORD-YYYYMMDD-XXXXX
func (o *Order) GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), o.ID)
}

// GetFormattedTotal returns total amount as float in currency units
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalAmount) / 100
}

// CanBeCancelled checks if the order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// IsActive reports whether the order is still in the kitchen pipeline
func (o *Order) IsActive() bool {
	for _, s := range kitchenStatuses {
		if o.Status == s {
			return true
		}
	}
	return false
}

// AddStatusHistory adds a new status change to history
func (o *Order) AddStatusHistory(status OrderStatus, comment string, createdBy uint) {
	history := OrderStatusHistory{
		OrderID:   o.ID,
		Status:    status,
		Comment:   comment,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	o.StatusHistory = append(o.StatusHistory, history)
}

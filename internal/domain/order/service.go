// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/socdefainder-oss/pronto-backend/internal/config"
)

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateOrderInput carries everything the checkout flow collected.
// Amounts are in cents and persisted verbatim.
type CreateOrderInput struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	DeliveryType DeliveryType
	Address      *Address

	PaymentMethod   string
	PaymentCategory string
	CardBrand       string

	Items []CreateOrderItemInput

	SubtotalAmount    int64
	DiscountAmount    int64
	DeliveryFeeAmount int64
	TotalAmount       int64

	CouponCode string
	Notes      string
}

// CreateOrderItemInput is one cart line at order time
type CreateOrderItemInput struct {
	ProductID uint
	Name      string
	Price     int64
	Quantity  int
}

// OrderListRequest represents order listing parameters
type OrderListRequest struct {
	Page     int         `form:"page,default=1"`
	Limit    int         `form:"limit,default=20"`
	Status   OrderStatus `form:"status"`
	SortBy   string      `form:"sort_by,default=created_at"`
	SortDesc bool        `form:"sort_desc,default=true"`
}

// UpdateStatusRequest represents a staff status change
type UpdateStatusRequest struct {
	Status  OrderStatus `json:"status" binding:"required"`
	Comment string      `json:"comment"`
}

// OrderListResponse represents paginated order results
type OrderListResponse struct {
	Orders     []Order            `json:"orders"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse represents pagination info
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// CreateOrder persists a new order with its items in one transaction.
// The order starts as pending with payment pending; payment-provider
// bookkeeping happens afterwards and never rolls the order back.
func (s *Service) CreateOrder(ctx context.Context, input *CreateOrderInput) (*Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}
	if input.DeliveryType == DeliveryTypeDelivery && input.Address == nil {
		return nil, fmt.Errorf("delivery orders require an address")
	}

	order := &Order{
		Status:        OrderStatusPending,
		PaymentStatus: PaymentStatusPending,

		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CustomerEmail: input.CustomerEmail,

		DeliveryType: input.DeliveryType,
		Address:      input.Address,

		PaymentMethod:   input.PaymentMethod,
		PaymentCategory: input.PaymentCategory,
		CardBrand:       input.CardBrand,

		SubtotalAmount:    input.SubtotalAmount,
		DiscountAmount:    input.DiscountAmount,
		DeliveryFeeAmount: input.DeliveryFeeAmount,
		TotalAmount:       input.TotalAmount,

		Currency:   s.config.Checkout.Currency,
		Notes:      input.Notes,
		CouponCode: input.CouponCode,
	}

	if input.PaymentCategory == "delivery" {
		order.PaymentStatus = PaymentStatusOnDelivery
	}

	for _, item := range input.Items {
		order.Items = append(order.Items, OrderItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price,
			TotalPrice: item.Price * int64(item.Quantity),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// Order number needs the generated ID
		order.OrderNumber = order.GenerateOrderNumber()
		if err := tx.Model(order).Update("order_number", order.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to set order number: %w", err)
		}

		history := OrderStatusHistory{
			OrderID:   order.ID,
			Status:    OrderStatusPending,
			Comment:   "Order placed",
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// AttachPayment records a payment-provider session against an order and
// moves the order's payment status along with it
func (s *Service) AttachPayment(ctx context.Context, orderID uint, payment *Payment) error {
	payment.OrderID = orderID
	if payment.Currency == "" {
		payment.Currency = s.config.Checkout.Currency
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to attach payment: %w", err)
		}
		if err := tx.Model(&Order{}).Where("id = ?", orderID).
			Update("payment_status", payment.Status).Error; err != nil {
			return fmt.Errorf("failed to update payment status: %w", err)
		}
		return nil
	})
}

// buildOrderClause maps the requested sort onto known columns. Anything
// outside the whitelist falls back to created_at.
func buildOrderClause(sortBy string, desc bool) string {
	validSortFields := map[string]bool{
		"created_at":   true,
		"updated_at":   true,
		"total_amount": true,
		"status":       true,
		"order_number": true,
	}

	if !validSortFields[sortBy] {
		sortBy = "created_at"
	}

	direction := "asc"
	if desc {
		direction = "desc"
	}

	return fmt.Sprintf("%s %s", sortBy, direction)
}

// GetOrders retrieves orders with filtering and pagination
func (s *Service) GetOrders(ctx context.Context, req *OrderListRequest) (*OrderListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.WithContext(ctx).Model(&Order{})

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	offset := (req.Page - 1) * req.Limit
	err := query.Preload("Items").
		Order(buildOrderClause(req.SortBy, req.SortDesc)).
		Offset(offset).
		Limit(req.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &OrderListResponse{
		Orders: orders,
		Pagination: PaginationResponse{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetOrder retrieves a single order by ID
func (s *Service) GetOrder(ctx context.Context, orderID uint) (*Order, error) {
	var order Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&order, orderID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// GetOrderByNumber retrieves an order by its public order number
func (s *Service) GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var order Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// UpdateOrderStatus moves an order through its lifecycle, recording
// history and the milestone timestamps.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID uint, req *UpdateStatusRequest, staffID uint) (*Order, error) {
	var order Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("order not found")
			}
			return fmt.Errorf("failed to get order: %w", err)
		}

		if !ValidStatusTransition(order.Status, req.Status) {
			return fmt.Errorf("invalid status transition from %s to %s", order.Status, req.Status)
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status": req.Status,
		}
		switch req.Status {
		case OrderStatusConfirmed:
			updates["confirmed_at"] = now
		case OrderStatusReady:
			updates["ready_at"] = now
		case OrderStatusDelivered:
			updates["delivered_at"] = now
			if order.PaymentCategory == "delivery" {
				updates["payment_status"] = PaymentStatusPaid
			}
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		history := OrderStatusHistory{
			OrderID:   order.ID,
			Status:    req.Status,
			Comment:   req.Comment,
			CreatedBy: staffID,
			CreatedAt: now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}

		order.Status = req.Status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels an order if it has not entered preparation
func (s *Service) CancelOrder(ctx context.Context, orderID uint, reason string, staffID uint) (*Order, error) {
	var order Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("order not found")
			}
			return fmt.Errorf("failed to get order: %w", err)
		}

		if !order.CanBeCancelled() {
			return fmt.Errorf("order cannot be cancelled in status %s", order.Status)
		}

		if err := tx.Model(&order).Update("status", OrderStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}

		comment := "Order cancelled"
		if reason != "" {
			comment = reason
		}
		history := OrderStatusHistory{
			OrderID:   order.ID,
			Status:    OrderStatusCancelled,
			Comment:   comment,
			CreatedBy: staffID,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}

		order.Status = OrderStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// KitchenQueue returns active orders for the kitchen display,
// oldest first.
func (s *Service) KitchenQueue(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("status IN ?", kitchenStatuses).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load kitchen queue: %w", err)
	}
	return orders, nil
}

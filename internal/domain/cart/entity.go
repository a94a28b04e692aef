// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// SessionCart represents a cart for an anonymous checkout session (stored in Redis)
type SessionCart struct {
	SessionID string            `json:"session_id"`
	Items     []SessionCartItem `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// SessionCartItem represents one cart line. Name and price are snapshotted
// from the menu at the time the item is added.
type SessionCartItem struct {
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       int64     `json:"price"` // Unit price in cents at add time
	Quantity    int       `json:"quantity"`
	AddedAt     time.Time `json:"added_at"`
}

// CartTotals represents calculated cart totals
type CartTotals struct {
	ItemCount      int   `json:"item_count"`     // Number of distinct lines
	TotalQuantity  int   `json:"total_quantity"` // Sum of all quantities
	SubTotal       int64 `json:"sub_total"`
	DiscountAmount int64 `json:"discount_amount"`
	TotalAmount    int64 `json:"total_amount"` // max(0, sub_total - discount)
}

// Add merges an item into the cart, incrementing the quantity when the
// product is already present. The price snapshot is refreshed on merge.
func (c *SessionCart) Add(item SessionCartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			c.Items[i].Price = item.Price
			c.Items[i].ProductName = item.ProductName
			c.UpdatedAt = time.Now().UTC()
			return
		}
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now().UTC()
}

// SetQuantity sets the quantity of a cart line. A quantity of zero or
// below removes the line. Returns false when the product is not in the cart.
func (c *SessionCart) SetQuantity(productID uint, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			c.UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// Remove deletes a cart line. Returns false when the product is not in the cart.
func (c *SessionCart) Remove(productID uint) bool {
	return c.SetQuantity(productID, 0)
}

// IsEmpty reports whether the cart has no lines
func (c *SessionCart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal returns the sum of price x quantity over all lines
func (c *SessionCart) Subtotal() int64 {
	var subtotal int64
	for _, item := range c.Items {
		subtotal += item.Price * int64(item.Quantity)
	}
	return subtotal
}

// Totals computes cart totals for a given discount. The final total is
// floored at zero: a discount larger than the subtotal never goes negative.
func (c *SessionCart) Totals(discount int64) CartTotals {
	totals := CartTotals{
		ItemCount:      len(c.Items),
		SubTotal:       c.Subtotal(),
		DiscountAmount: discount,
	}
	for _, item := range c.Items {
		totals.TotalQuantity += item.Quantity
	}
	totals.TotalAmount = FinalTotal(totals.SubTotal, discount)
	return totals
}

// FinalTotal applies a discount to a subtotal, floored at zero
func FinalTotal(subtotal, discount int64) int64 {
	total := subtotal - discount
	if total < 0 {
		return 0
	}
	return total
}

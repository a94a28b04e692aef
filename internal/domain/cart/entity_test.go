package cart

import (
	"testing"
)

func TestAddMergesByProduct(t *testing.T) {
	c := &SessionCart{SessionID: "s1"}

	c.Add(SessionCartItem{ProductID: 1, ProductName: "Classic Burger", Price: 2990, Quantity: 1})
	c.Add(SessionCartItem{ProductID: 1, ProductName: "Classic Burger", Price: 2990, Quantity: 2})
	c.Add(SessionCartItem{ProductID: 2, ProductName: "Fries", Price: 1290, Quantity: 1})

	if len(c.Items) != 2 {
		t.Fatalf("expected 2 cart lines, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Errorf("expected merged quantity 3, got %d", c.Items[0].Quantity)
	}
}

func TestAddRefreshesPrice(t *testing.T) {
	c := &SessionCart{SessionID: "s1"}

	c.Add(SessionCartItem{ProductID: 1, ProductName: "Classic Burger", Price: 2990, Quantity: 1})
	// Menu price changed between adds
	c.Add(SessionCartItem{ProductID: 1, ProductName: "Classic Burger", Price: 3190, Quantity: 1})

	if c.Items[0].Price != 3190 {
		t.Errorf("expected refreshed price 3190, got %d", c.Items[0].Price)
	}
}

func TestSetQuantity(t *testing.T) {
	c := &SessionCart{SessionID: "s1"}
	c.Add(SessionCartItem{ProductID: 1, Price: 2990, Quantity: 2})

	if ok := c.SetQuantity(1, 5); !ok {
		t.Fatal("SetQuantity on existing item should return true")
	}
	if c.Items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", c.Items[0].Quantity)
	}

	if ok := c.SetQuantity(99, 1); ok {
		t.Error("SetQuantity on missing item should return false")
	}

	// Zero quantity removes the line
	if ok := c.SetQuantity(1, 0); !ok {
		t.Fatal("SetQuantity to zero on existing item should return true")
	}
	if !c.IsEmpty() {
		t.Error("cart should be empty after quantity set to zero")
	}
}

func TestSubtotal(t *testing.T) {
	c := &SessionCart{SessionID: "s1"}
	c.Add(SessionCartItem{ProductID: 1, Price: 2990, Quantity: 2})
	c.Add(SessionCartItem{ProductID: 2, Price: 1290, Quantity: 1})

	want := int64(2990*2 + 1290)
	if got := c.Subtotal(); got != want {
		t.Errorf("Subtotal() = %d, want %d", got, want)
	}
}

func TestFinalTotal(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		discount int64
		want     int64
	}{
		{"no discount", 5980, 0, 5980},
		{"partial discount", 5980, 500, 5480},
		{"discount equals subtotal", 5980, 5980, 0},
		{"discount exceeds subtotal", 500, 5980, 0},
		{"empty cart", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FinalTotal(tt.subtotal, tt.discount); got != tt.want {
				t.Errorf("FinalTotal(%d, %d) = %d, want %d", tt.subtotal, tt.discount, got, tt.want)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	c := &SessionCart{SessionID: "s1"}
	c.Add(SessionCartItem{ProductID: 1, Price: 2990, Quantity: 2})
	c.Add(SessionCartItem{ProductID: 2, Price: 1290, Quantity: 3})

	totals := c.Totals(500)

	if totals.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", totals.ItemCount)
	}
	if totals.TotalQuantity != 5 {
		t.Errorf("TotalQuantity = %d, want 5", totals.TotalQuantity)
	}
	wantSubtotal := int64(2990*2 + 1290*3)
	if totals.SubTotal != wantSubtotal {
		t.Errorf("SubTotal = %d, want %d", totals.SubTotal, wantSubtotal)
	}
	if totals.TotalAmount != wantSubtotal-500 {
		t.Errorf("TotalAmount = %d, want %d", totals.TotalAmount, wantSubtotal-500)
	}
}

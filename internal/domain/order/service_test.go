// internal/domain/order/service_test.go
package order

import "testing"

func TestBuildOrderClause(t *testing.T) {
	tests := []struct {
		name   string
		sortBy string
		desc   bool
		want   string
	}{
		{"default descending", "created_at", true, "created_at desc"},
		{"ascending", "created_at", false, "created_at asc"},
		{"total amount", "total_amount", true, "total_amount desc"},
		{"order number", "order_number", false, "order_number asc"},
		{"status", "status", true, "status desc"},
		{"unknown column falls back", "customer_phone", true, "created_at desc"},
		{"empty falls back", "", false, "created_at asc"},
		{"sql injection falls back", "created_at;DROP TABLE orders--", true, "created_at desc"},
		{"expression falls back", "created_at, (SELECT 1)", false, "created_at asc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildOrderClause(tt.sortBy, tt.desc)
			if got != tt.want {
				t.Errorf("buildOrderClause(%q, %v) = %q, want %q", tt.sortBy, tt.desc, got, tt.want)
			}
		})
	}
}

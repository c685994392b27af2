package models

import (
	"regexp"
	"testing"
	"time"
)

func validOrder() Order {
	return Order{
		OrderNumber: "ORD-20240101-123456",
		UserID:      "cust01",
		Items: []OrderLine{
			{Kind: ItemTicket, Ref: "P01", Name: "Bako National Park", Quantity: 2, UnitPrice: 1000, VisitDate: "2025-12-01"},
			{Kind: ItemMerchandise, Ref: "SKU001", Name: "Park T-Shirt", Quantity: 1, UnitPrice: 500},
		},
		TotalAmount: 2500,
		Status:      OrderCompleted,
		CreatedAt:   time.Now(),
	}
}

func TestOrder_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Order)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid order",
			mutate: func(o *Order) {},
		},
		{
			name:    "invalid order number format",
			mutate:  func(o *Order) { o.OrderNumber = "INVALID-123" },
			wantErr: true,
			errMsg:  "order number format is invalid",
		},
		{
			name:    "missing user id",
			mutate:  func(o *Order) { o.UserID = "" },
			wantErr: true,
			errMsg:  "user id is required",
		},
		{
			name:    "no line items",
			mutate:  func(o *Order) { o.Items = nil },
			wantErr: true,
			errMsg:  "order must have at least one line item",
		},
		{
			name:    "invalid status",
			mutate:  func(o *Order) { o.Status = "invalid" },
			wantErr: true,
			errMsg:  "invalid order status",
		},
		{
			name:    "total does not match line subtotals",
			mutate:  func(o *Order) { o.TotalAmount = 9999 },
			wantErr: true,
			errMsg:  "total amount 9999 does not match line subtotals 2500",
		},
		{
			name:    "zero quantity line",
			mutate:  func(o *Order) { o.Items[0].Quantity = 0; o.TotalAmount = 500 },
			wantErr: true,
			errMsg:  "line quantity must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(&order)
			err := order.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Order.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("Order.Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	format := regexp.MustCompile(`^ORD-\d{8}-\d{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		num := GenerateOrderNumber()
		if !format.MatchString(num) {
			t.Fatalf("order number %q does not match format", num)
		}
		seen[num] = true
	}

	// 100 draws from a million-value space should essentially never all
	// collide; a handful of duplicates is tolerable, total collapse is not.
	if len(seen) < 90 {
		t.Errorf("expected mostly unique order numbers, got %d unique of 100", len(seen))
	}
}

func TestOrder_TotalInCurrency(t *testing.T) {
	order := validOrder()
	if got := order.TotalInCurrency(); got != 25.00 {
		t.Errorf("TotalInCurrency() = %v, want 25.00", got)
	}
}

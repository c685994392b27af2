package models

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderCompleted OrderStatus = "completed"
	OrderRefunded  OrderStatus = "refunded"
)

// OrderLine is the immutable snapshot of a cart line at checkout time.
// Ticket lines additionally record the ids of the tickets issued for
// each seat.
type OrderLine struct {
	Kind      ItemKind `bson:"kind" json:"kind"`
	Ref       string   `bson:"ref" json:"ref"`
	Name      string   `bson:"name" json:"name"`
	Quantity  int      `bson:"quantity" json:"quantity"`
	UnitPrice int      `bson:"unit_price" json:"unit_price"` // cents
	VisitDate string   `bson:"visit_date,omitempty" json:"visit_date,omitempty"`
	TicketIDs []string `bson:"ticket_ids,omitempty" json:"ticket_ids,omitempty"`
}

// Subtotal returns quantity times the snapshot unit price, in cents.
func (l OrderLine) Subtotal() int {
	return l.UnitPrice * l.Quantity
}

// Order represents a completed purchase. Immutable once created except
// for status transitions.
type Order struct {
	OrderNumber string      `bson:"order_number" json:"order_number"`
	UserID      string      `bson:"user_id" json:"user_id"`
	Items       []OrderLine `bson:"items" json:"items"`
	TotalAmount int         `bson:"total_amount" json:"total_amount"` // cents
	Status      OrderStatus `bson:"status" json:"status"`
	CreatedAt   time.Time   `bson:"created_at" json:"created_at"`
}

// Order number format: ORD-YYYYMMDD-XXXXXX (e.g., ORD-20240101-123456)
var orderNumberRegex = regexp.MustCompile(`^ORD-\d{8}-\d{6}$`)

// Validate validates the order data
func (o *Order) Validate() error {
	if !orderNumberRegex.MatchString(o.OrderNumber) {
		return errors.New("order number format is invalid")
	}

	if o.UserID == "" {
		return errors.New("user id is required")
	}

	if len(o.Items) == 0 {
		return errors.New("order must have at least one line item")
	}

	if o.TotalAmount < 0 {
		return errors.New("total amount cannot be negative")
	}

	switch o.Status {
	case OrderCompleted, OrderRefunded:
	default:
		return errors.New("invalid order status")
	}

	sum := 0
	for _, line := range o.Items {
		if line.Quantity <= 0 {
			return errors.New("line quantity must be positive")
		}
		sum += line.Subtotal()
	}
	if sum != o.TotalAmount {
		return fmt.Errorf("total amount %d does not match line subtotals %d", o.TotalAmount, sum)
	}

	return nil
}

// TotalInCurrency returns the order total in the main currency unit.
func (o *Order) TotalInCurrency() float64 {
	return float64(o.TotalAmount) / 100.0
}

// GenerateOrderNumber generates a unique order number
func GenerateOrderNumber() string {
	now := time.Now()
	dateStr := now.Format("20060102")

	// Generate a 6-digit random number using crypto/rand for better uniqueness
	max := big.NewInt(1000000)
	randomNum, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fallback to timestamp-based generation if crypto/rand fails
		return fmt.Sprintf("ORD-%s-%06d", dateStr, now.UnixNano()%1000000)
	}

	return fmt.Sprintf("ORD-%s-%06d", dateStr, randomNum.Int64())
}

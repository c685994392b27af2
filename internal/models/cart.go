package models

import "time"

// ItemKind distinguishes cart line types
type ItemKind string

const (
	ItemTicket      ItemKind = "TICKET"
	ItemMerchandise ItemKind = "MERCH"
)

// CartItem represents one line in a cart. UnitPrice is a snapshot taken
// when the line was first added; later catalog price changes do not
// affect it.
type CartItem struct {
	Kind      ItemKind `bson:"kind" json:"kind"`
	Ref       string   `bson:"ref" json:"ref"` // park_id for tickets, sku for merchandise
	Name      string   `bson:"name" json:"name"`
	Quantity  int      `bson:"quantity" json:"quantity"`
	UnitPrice int      `bson:"unit_price" json:"unit_price"` // cents
	VisitDate string   `bson:"visit_date,omitempty" json:"visit_date,omitempty"`
}

// Subtotal returns quantity times the snapshot unit price, in cents.
func (i CartItem) Subtotal() int {
	return i.UnitPrice * i.Quantity
}

// Matches reports whether the line refers to the same purchasable as the
// given key. Ticket lines for the same park but different visit dates are
// distinct.
func (i CartItem) Matches(kind ItemKind, ref, visitDate string) bool {
	if i.Kind != kind || i.Ref != ref {
		return false
	}
	if kind == ItemTicket {
		return i.VisitDate == visitDate
	}
	return true
}

// Cart is a customer's pending selection. It is persisted to the carts
// collection after every mutation so it survives logout.
type Cart struct {
	UserID    string     `bson:"user_id" json:"user_id"`
	Items     []CartItem `bson:"items" json:"items"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// NewCart returns an empty cart for a user.
func NewCart(userID string) *Cart {
	return &Cart{UserID: userID}
}

// IsEmpty returns true when the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total returns the sum of all line subtotals, in cents.
func (c *Cart) Total() int {
	total := 0
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// QuantityFor returns how many units of the given purchasable are already
// in the cart.
func (c *Cart) QuantityFor(kind ItemKind, ref, visitDate string) int {
	qty := 0
	for _, item := range c.Items {
		if item.Matches(kind, ref, visitDate) {
			qty += item.Quantity
		}
	}
	return qty
}

// Add merges the item into an existing line for the same purchasable, or
// appends a new line. A merge keeps the existing line's snapshot price.
func (c *Cart) Add(item CartItem) {
	for i := range c.Items {
		if c.Items[i].Matches(item.Kind, item.Ref, item.VisitDate) {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// Remove deletes the line for the given purchasable. Returns
// ErrLineNotFound when no such line exists.
func (c *Cart) Remove(kind ItemKind, ref, visitDate string) error {
	for i := range c.Items {
		if c.Items[i].Matches(kind, ref, visitDate) {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Clear removes all lines.
func (c *Cart) Clear() {
	c.Items = nil
}

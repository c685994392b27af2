package models

import (
	"reflect"
	"testing"
)

func TestCart_AddMergesMatchingLines(t *testing.T) {
	cart := NewCart("cust01")

	cart.Add(CartItem{Kind: ItemTicket, Ref: "P01", Name: "Bako National Park", Quantity: 2, UnitPrice: 1000, VisitDate: "2025-12-01"})
	cart.Add(CartItem{Kind: ItemTicket, Ref: "P01", Name: "Bako National Park", Quantity: 1, UnitPrice: 1200, VisitDate: "2025-12-01"})

	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Errorf("expected merged quantity 3, got %d", cart.Items[0].Quantity)
	}
	// merge keeps the original snapshot price
	if cart.Items[0].UnitPrice != 1000 {
		t.Errorf("expected snapshot price 1000, got %d", cart.Items[0].UnitPrice)
	}
}

func TestCart_AddKeepsDistinctVisitDatesSeparate(t *testing.T) {
	cart := NewCart("cust01")

	cart.Add(CartItem{Kind: ItemTicket, Ref: "P01", Quantity: 1, UnitPrice: 1000, VisitDate: "2025-12-01"})
	cart.Add(CartItem{Kind: ItemTicket, Ref: "P01", Quantity: 1, UnitPrice: 1000, VisitDate: "2025-12-02"})

	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 lines for distinct visit dates, got %d", len(cart.Items))
	}
}

func TestCart_Total(t *testing.T) {
	cart := NewCart("cust01")

	if cart.Total() != 0 {
		t.Errorf("empty cart total = %d, want 0", cart.Total())
	}

	cart.Add(CartItem{Kind: ItemTicket, Ref: "P01", Quantity: 2, UnitPrice: 1000, VisitDate: "2025-12-01"})
	cart.Add(CartItem{Kind: ItemMerchandise, Ref: "SKU001", Quantity: 1, UnitPrice: 500})

	if got := cart.Total(); got != 2500 {
		t.Errorf("cart total = %d, want 2500", got)
	}
}

func TestCart_RemoveMissingLine(t *testing.T) {
	cart := NewCart("cust01")
	cart.Add(CartItem{Kind: ItemMerchandise, Ref: "SKU001", Quantity: 1, UnitPrice: 500})

	if err := cart.Remove(ItemMerchandise, "SKU999", ""); err != ErrLineNotFound {
		t.Errorf("Remove missing line error = %v, want ErrLineNotFound", err)
	}
	if len(cart.Items) != 1 {
		t.Errorf("cart changed by failed remove: %d lines", len(cart.Items))
	}
}

// An add followed by a remove of the same reference restores the cart to
// its prior state.
func TestCart_AddRemoveRoundTrip(t *testing.T) {
	cart := NewCart("cust01")
	cart.Add(CartItem{Kind: ItemTicket, Ref: "P01", Quantity: 2, UnitPrice: 1000, VisitDate: "2025-12-01"})

	before := make([]CartItem, len(cart.Items))
	copy(before, cart.Items)

	cart.Add(CartItem{Kind: ItemMerchandise, Ref: "SKU001", Quantity: 3, UnitPrice: 500})
	if err := cart.Remove(ItemMerchandise, "SKU001", ""); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if !reflect.DeepEqual(cart.Items, before) {
		t.Errorf("cart state after add+remove = %+v, want %+v", cart.Items, before)
	}
}

func TestCart_QuantityFor(t *testing.T) {
	cart := NewCart("cust01")
	cart.Add(CartItem{Kind: ItemTicket, Ref: "P01", Quantity: 2, UnitPrice: 1000, VisitDate: "2025-12-01"})
	cart.Add(CartItem{Kind: ItemTicket, Ref: "P01", Quantity: 1, UnitPrice: 1000, VisitDate: "2025-12-02"})

	if got := cart.QuantityFor(ItemTicket, "P01", "2025-12-01"); got != 2 {
		t.Errorf("QuantityFor(P01, 2025-12-01) = %d, want 2", got)
	}
	if got := cart.QuantityFor(ItemTicket, "P02", "2025-12-01"); got != 0 {
		t.Errorf("QuantityFor(P02) = %d, want 0", got)
	}
}

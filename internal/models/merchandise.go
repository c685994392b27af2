package models

import (
	"errors"
	"strings"
)

// Merchandise represents a purchasable item in the merchandise collection
type Merchandise struct {
	SKU           string `bson:"sku" json:"sku"`
	Name          string `bson:"name" json:"name"`
	Price         int    `bson:"price" json:"price"` // Price in cents
	StockQuantity int    `bson:"stock_quantity" json:"stock_quantity"`
}

// Validate validates the merchandise data
func (m *Merchandise) Validate() error {
	if strings.TrimSpace(m.SKU) == "" {
		return errors.New("sku is required")
	}

	if strings.TrimSpace(m.Name) == "" {
		return errors.New("name is required")
	}

	if m.Price < 0 {
		return errors.New("price cannot be negative")
	}

	if m.StockQuantity < 0 {
		return errors.New("stock quantity cannot be negative")
	}

	return nil
}

// InStock returns true if at least qty units are available.
func (m *Merchandise) InStock(qty int) bool {
	return m.StockQuantity >= qty
}

package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SupportStatus represents the status of a support ticket
type SupportStatus string

const (
	SupportOpen     SupportStatus = "OPEN"
	SupportResolved SupportStatus = "RESOLVED"
)

// SupportTicket is a free-text issue report filed by a customer.
type SupportTicket struct {
	ID          string        `bson:"id" json:"id"`
	UserID      string        `bson:"user_id" json:"user_id"`
	Description string        `bson:"description" json:"description"`
	Status      SupportStatus `bson:"status" json:"status"`
	Resolution  string        `bson:"resolution" json:"resolution"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
}

// NewSupportTicket creates an open ticket with a 6-character id.
func NewSupportTicket(userID, description string) *SupportTicket {
	return &SupportTicket{
		ID:          uuid.NewString()[:6],
		UserID:      userID,
		Description: description,
		Status:      SupportOpen,
		CreatedAt:   time.Now(),
	}
}

// Validate validates the support ticket data
func (t *SupportTicket) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return errors.New("description cannot be empty")
	}
	if t.UserID == "" {
		return errors.New("user id is required")
	}
	return nil
}

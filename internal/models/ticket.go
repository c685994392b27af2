package models

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus represents the status of an issued ticket
type TicketStatus string

const (
	TicketConfirmed TicketStatus = "CONFIRMED"
	TicketUsed      TicketStatus = "USED"
	TicketCancelled TicketStatus = "CANCELLED"
)

// Ticket is a persisted proof of admission for one visitor on one date.
type Ticket struct {
	TicketID    string       `bson:"ticket_id" json:"ticket_id"`
	OrderNumber string       `bson:"order_number" json:"order_number"`
	OwnerID     string       `bson:"owner_id" json:"owner_id"`
	ParkID      string       `bson:"park_id" json:"park_id"`
	ParkName    string       `bson:"park_name" json:"park_name"`
	VisitDate   string       `bson:"visit_date" json:"visit_date"`
	Price       int          `bson:"price" json:"price"` // cents
	Status      TicketStatus `bson:"status" json:"status"`
	QRCode      string       `bson:"qr_code" json:"qr_code"`
	CreatedAt   time.Time    `bson:"created_at" json:"created_at"`
}

// NewTicket creates a confirmed ticket with a fresh 8-character id.
func NewTicket(ownerID, parkID, parkName, visitDate string, price int) *Ticket {
	id := NewTicketID()
	return &Ticket{
		TicketID:  id,
		OwnerID:   ownerID,
		ParkID:    parkID,
		ParkName:  parkName,
		VisitDate: visitDate,
		Price:     price,
		Status:    TicketConfirmed,
		QRCode:    "QR-" + id,
		CreatedAt: time.Now(),
	}
}

// NewTicketID returns an 8-character ticket identifier.
func NewTicketID() string {
	return uuid.NewString()[:8]
}

package models

import "time"

// Audit categories
const (
	AuditUser    = "USER"
	AuditOrder   = "ORDER"
	AuditBooking = "BOOKING"
	AuditPayment = "PAYMENT"
	AuditSystem  = "SYSTEM"
)

// AuditLog is one entry in the audit trail.
type AuditLog struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Category  string    `bson:"category" json:"category"`
	User      string    `bson:"user" json:"user"`
	Action    string    `bson:"action" json:"action"`
}

package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Role represents a user's role in the system
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleCustomer Role = "Customer"
)

// User represents an account in the users collection
type User struct {
	UserID       string `bson:"user_id" json:"user_id"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password_hash" json:"-"`
	Role         Role   `bson:"role" json:"role"`

	// Customer demographics; zero values mean "not provided"
	AgeGroup       string `bson:"age_group,omitempty" json:"age_group,omitempty"`
	Gender         string `bson:"gender,omitempty" json:"gender,omitempty"`
	Region         string `bson:"region,omitempty" json:"region,omitempty"`
	VisitorType    string `bson:"visitor_type,omitempty" json:"visitor_type,omitempty"`
	MarketingOptIn bool   `bson:"marketing_opt_in" json:"marketing_opt_in"`
}

// CustomerProfile holds the demographic fields a customer may edit.
type CustomerProfile struct {
	AgeGroup       string `bson:"age_group,omitempty"`
	Gender         string `bson:"gender,omitempty"`
	Region         string `bson:"region,omitempty"`
	VisitorType    string `bson:"visitor_type,omitempty"`
	MarketingOptIn *bool  `bson:"marketing_opt_in,omitempty"`
}

// AgeGroups lists the selectable age buckets, in display order.
var AgeGroups = []string{"<18", "18-24", "25-34", "35-44", "45-54", "55+"}

// VisitorTypes lists the accepted visitor type values.
var VisitorTypes = []string{"local", "domestic", "tourist"}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates the user data
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("name is required")
	}

	if strings.TrimSpace(u.Email) == "" {
		return errors.New("email is required")
	}

	if len(u.Email) > 255 {
		return errors.New("email must be less than 255 characters")
	}

	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}

	switch u.Role {
	case RoleAdmin, RoleCustomer:
	default:
		return fmt.Errorf("invalid role: %q", u.Role)
	}

	return nil
}

// ValidateEmailFormat checks that an email looks like an address. The
// seeded demo accounts use bare names, so this is only applied to new
// registrations.
func ValidateEmailFormat(email string) error {
	if !emailRegex.MatchString(email) {
		return errors.New("email format is invalid")
	}
	return nil
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CustomerID formats a sequential customer id, e.g. cust03.
func CustomerID(n int64) string {
	return fmt.Sprintf("cust%02d", n)
}

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// VisitDateLayout is the wire format for schedule dates.
const VisitDateLayout = "2006-01-02"

// Schedule represents a single visit date for a park. Capacity is a
// park-level property; the schedule only tracks occupancy.
type Schedule struct {
	VisitDate        string `bson:"visit_date" json:"visit_date"`
	CurrentOccupancy int    `bson:"current_occupancy" json:"current_occupancy"`
}

// Park represents a bookable park in the catalog
type Park struct {
	ParkID      string     `bson:"park_id" json:"park_id"`
	Name        string     `bson:"name" json:"name"`
	Location    string     `bson:"location" json:"location"`
	Description string     `bson:"description" json:"description"`
	MaxCapacity int        `bson:"max_capacity" json:"max_capacity"`
	TicketPrice *int       `bson:"ticket_price,omitempty" json:"ticket_price,omitempty"` // cents; nil = not set
	Schedules   []Schedule `bson:"schedules" json:"schedules"`
}

// Validate validates the park data
func (p *Park) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}

	if strings.TrimSpace(p.Location) == "" {
		return errors.New("location is required")
	}

	if p.MaxCapacity <= 0 {
		return errors.New("max capacity must be a positive integer")
	}

	if p.TicketPrice != nil && *p.TicketPrice < 0 {
		return errors.New("ticket price cannot be negative")
	}

	seen := make(map[string]bool, len(p.Schedules))
	for _, s := range p.Schedules {
		if err := ValidateVisitDate(s.VisitDate); err != nil {
			return err
		}
		if seen[s.VisitDate] {
			return fmt.Errorf("duplicate schedule for date %s", s.VisitDate)
		}
		seen[s.VisitDate] = true
	}

	return nil
}

// FindSchedule returns the schedule for visitDate, or nil if none exists.
func (p *Park) FindSchedule(visitDate string) *Schedule {
	for i := range p.Schedules {
		if p.Schedules[i].VisitDate == visitDate {
			return &p.Schedules[i]
		}
	}
	return nil
}

// AddSchedule appends a new empty schedule for visitDate.
func (p *Park) AddSchedule(visitDate string) error {
	if err := ValidateVisitDate(visitDate); err != nil {
		return err
	}
	if p.FindSchedule(visitDate) != nil {
		return ErrDuplicateSchedule
	}
	p.Schedules = append(p.Schedules, Schedule{VisitDate: visitDate})
	return nil
}

// RemoveSchedule deletes the schedule for visitDate.
func (p *Park) RemoveSchedule(visitDate string) error {
	for i := range p.Schedules {
		if p.Schedules[i].VisitDate == visitDate {
			p.Schedules = append(p.Schedules[:i], p.Schedules[i+1:]...)
			return nil
		}
	}
	return ErrScheduleNotFound
}

// Remaining returns how many spots are left on a schedule under the
// park-level capacity.
func (p *Park) Remaining(s Schedule) int {
	remaining := p.MaxCapacity - s.CurrentOccupancy
	if remaining < 0 {
		return 0
	}
	return remaining
}

// UpdateMaxCapacity changes the park-level capacity. The new capacity may
// not undercut any existing schedule's occupancy.
func (p *Park) UpdateMaxCapacity(capacity int) error {
	if capacity <= 0 {
		return errors.New("max capacity must be a positive integer")
	}
	for _, s := range p.Schedules {
		if s.CurrentOccupancy > capacity {
			return errors.New("new capacity cannot be less than existing schedule occupancy")
		}
	}
	p.MaxCapacity = capacity
	return nil
}

// HasTicketPrice returns true when an admin has set a price for this park.
func (p *Park) HasTicketPrice() bool {
	return p.TicketPrice != nil
}

// ValidateVisitDate checks the YYYY-MM-DD format.
func ValidateVisitDate(visitDate string) error {
	if visitDate == "" {
		return errors.New("visit date is required")
	}
	if _, err := time.Parse(VisitDateLayout, visitDate); err != nil {
		return fmt.Errorf("invalid visit date %q: use YYYY-MM-DD", visitDate)
	}
	return nil
}

// NewParkID formats a sequential park id, e.g. P03.
func NewParkID(n int64) string {
	return fmt.Sprintf("P%02d", n)
}

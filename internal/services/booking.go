package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"park-system/internal/models"
)

// refundCutoff is how far before the visit date a refund is still allowed.
const refundCutoff = 24 * time.Hour

// BookingService manages issued tickets: viewing, rescheduling and the
// refund policy.
type BookingService struct {
	tx      Transactor
	parks   ParkRepository
	tickets TicketRepository
	orders  OrderRepository
	audit   AuditLogRepository
	log     *logrus.Logger

	// now is swappable for tests
	now func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(tx Transactor, parks ParkRepository, tickets TicketRepository, orders OrderRepository, audit AuditLogRepository, log *logrus.Logger) *BookingService {
	return &BookingService{
		tx:      tx,
		parks:   parks,
		tickets: tickets,
		orders:  orders,
		audit:   audit,
		log:     log,
		now:     time.Now,
	}
}

// ListTickets returns a user's tickets, optionally filtered by status.
func (s *BookingService) ListTickets(ctx context.Context, ownerID string, status models.TicketStatus) ([]*models.Ticket, error) {
	return s.tickets.FindByOwner(ctx, ownerID, status)
}

// GetTicket returns a single ticket, verifying ownership.
func (s *BookingService) GetTicket(ctx context.Context, ownerID, ticketID string) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.OwnerID != ownerID {
		return nil, models.ErrTicketNotFound
	}
	return ticket, nil
}

// Reschedule moves a confirmed ticket to a new visit date. The target
// schedule is created if the park does not have one yet; one spot is
// booked on the new date and released on the old.
func (s *BookingService) Reschedule(ctx context.Context, ownerID, ticketID, newDate string) (*models.Ticket, error) {
	if err := models.ValidateVisitDate(newDate); err != nil {
		return nil, err
	}

	ticket, err := s.GetTicket(ctx, ownerID, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != models.TicketConfirmed {
		return nil, errors.New("only confirmed tickets can be rescheduled")
	}
	if newDate == ticket.VisitDate {
		return ticket, nil
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		park, err := s.parks.GetByParkID(ctx, ticket.ParkID)
		if err != nil {
			return err
		}
		if park.FindSchedule(newDate) == nil {
			if err := park.AddSchedule(newDate); err != nil {
				return err
			}
			if err := s.parks.UpdateSchedules(ctx, ticket.ParkID, park.Schedules); err != nil {
				return err
			}
		}

		if err := s.parks.BookSpots(ctx, ticket.ParkID, newDate, 1); err != nil {
			return err
		}
		if err := s.parks.ReleaseSpots(ctx, ticket.ParkID, ticket.VisitDate, 1); err != nil {
			return err
		}
		return s.tickets.UpdateVisitDate(ctx, ticketID, newDate)
	})
	if err != nil {
		return nil, fmt.Errorf("reschedule failed: %w", err)
	}

	oldDate := ticket.VisitDate
	ticket.VisitDate = newDate

	s.recordAudit(ctx, models.AuditBooking, ownerID,
		fmt.Sprintf("rescheduled ticket %s from %s to %s", ticketID, oldDate, newDate))
	s.log.WithFields(logrus.Fields{
		"ticket_id": ticketID,
		"from":      oldDate,
		"to":        newDate,
	}).Info("ticket rescheduled")

	return ticket, nil
}

// Refund cancels a confirmed ticket and releases its spot, but only when
// the visit date is more than 24 hours away. A late request gets
// ErrRefundDenied; the caller may then offer CancelWithoutRefund.
func (s *BookingService) Refund(ctx context.Context, ownerID, ticketID string) error {
	ticket, err := s.GetTicket(ctx, ownerID, ticketID)
	if err != nil {
		return err
	}
	if ticket.Status != models.TicketConfirmed {
		return errors.New("only confirmed tickets can be refunded")
	}

	visit, err := time.Parse(models.VisitDateLayout, ticket.VisitDate)
	if err != nil {
		return fmt.Errorf("invalid stored visit date %q: %w", ticket.VisitDate, err)
	}
	if visit.Sub(s.now()) <= refundCutoff {
		return models.ErrRefundDenied
	}

	if err := s.cancel(ctx, ticket); err != nil {
		return err
	}
	s.refundOrderIfDrained(ctx, ticket.OrderNumber)

	s.recordAudit(ctx, models.AuditPayment, ownerID,
		fmt.Sprintf("refunded ticket %s (%.2f)", ticketID, float64(ticket.Price)/100.0))
	s.log.WithFields(logrus.Fields{"ticket_id": ticketID, "amount_cents": ticket.Price}).Info("ticket refunded")
	return nil
}

// CancelWithoutRefund cancels a confirmed ticket and releases its spot
// with no money back, regardless of how close the visit date is.
func (s *BookingService) CancelWithoutRefund(ctx context.Context, ownerID, ticketID string) error {
	ticket, err := s.GetTicket(ctx, ownerID, ticketID)
	if err != nil {
		return err
	}
	if ticket.Status != models.TicketConfirmed {
		return errors.New("only confirmed tickets can be cancelled")
	}

	if err := s.cancel(ctx, ticket); err != nil {
		return err
	}

	s.recordAudit(ctx, models.AuditBooking, ownerID,
		fmt.Sprintf("cancelled ticket %s without refund", ticketID))
	return nil
}

func (s *BookingService) cancel(ctx context.Context, ticket *models.Ticket) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.tickets.UpdateStatus(ctx, ticket.TicketID, models.TicketCancelled); err != nil {
			return err
		}
		return s.parks.ReleaseSpots(ctx, ticket.ParkID, ticket.VisitDate, 1)
	})
	if err != nil {
		return fmt.Errorf("cancel failed: %w", err)
	}
	return nil
}

// CheckIn marks a confirmed ticket as used at the park gate. Admin-only;
// no ownership check.
func (s *BookingService) CheckIn(ctx context.Context, adminID, ticketID string) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != models.TicketConfirmed {
		return nil, fmt.Errorf("ticket %s is %s, not confirmed", ticketID, ticket.Status)
	}

	if err := s.tickets.UpdateStatus(ctx, ticketID, models.TicketUsed); err != nil {
		return nil, err
	}
	ticket.Status = models.TicketUsed

	s.recordAudit(ctx, models.AuditBooking, adminID,
		fmt.Sprintf("checked in ticket %s for %s on %s", ticketID, ticket.ParkName, ticket.VisitDate))
	return ticket, nil
}

// refundOrderIfDrained flips an order to refunded once every ticket it
// issued has been cancelled. Orders with surviving tickets keep their
// completed status.
func (s *BookingService) refundOrderIfDrained(ctx context.Context, orderNumber string) {
	order, err := s.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		s.log.WithError(err).WithField("order_number", orderNumber).Warn("failed to load order for refund bookkeeping")
		return
	}
	if order.Status == models.OrderRefunded {
		return
	}

	tickets, err := s.tickets.FindByOrder(ctx, orderNumber)
	if err != nil {
		s.log.WithError(err).WithField("order_number", orderNumber).Warn("failed to load order tickets")
		return
	}
	for _, t := range tickets {
		if t.Status != models.TicketCancelled {
			return
		}
	}

	if err := s.orders.UpdateStatus(ctx, orderNumber, models.OrderRefunded); err != nil {
		s.log.WithError(err).WithField("order_number", orderNumber).Warn("failed to mark order refunded")
	}
}

// ListOrders returns a user's orders, newest first.
func (s *BookingService) ListOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	return s.orders.GetByUser(ctx, userID)
}

func (s *BookingService) recordAudit(ctx context.Context, category, userID, action string) {
	entry := &models.AuditLog{
		Timestamp: time.Now(),
		Category:  category,
		User:      userID,
		Action:    action,
	}
	if err := s.audit.Insert(ctx, entry); err != nil {
		s.log.WithError(err).Warn("failed to write audit log")
	}
}

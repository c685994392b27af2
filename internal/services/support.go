package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"park-system/internal/models"
)

// SupportService handles customer issue reports and their resolution.
type SupportService struct {
	tickets SupportRepository
	log     *logrus.Logger
}

// NewSupportService creates a new support service
func NewSupportService(tickets SupportRepository, log *logrus.Logger) *SupportService {
	return &SupportService{tickets: tickets, log: log}
}

// Submit files a new support ticket for a customer.
func (s *SupportService) Submit(ctx context.Context, userID, description string) (*models.SupportTicket, error) {
	ticket := models.NewSupportTicket(userID, description)
	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"support_id": ticket.ID, "user_id": userID}).Info("support ticket filed")
	return ticket, nil
}

// ListOpen returns all open tickets, oldest first.
func (s *SupportService) ListOpen(ctx context.Context) ([]*models.SupportTicket, error) {
	return s.tickets.GetOpen(ctx)
}

// ListForUser returns a customer's tickets, newest first.
func (s *SupportService) ListForUser(ctx context.Context, userID string) ([]*models.SupportTicket, error) {
	return s.tickets.GetByUser(ctx, userID)
}

// Resolve closes an open ticket with a resolution note.
func (s *SupportService) Resolve(ctx context.Context, id, resolution string) error {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tickets.Resolve(ctx, id, resolution); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"support_id": id, "user_id": ticket.UserID}).Info("support ticket resolved")
	return nil
}

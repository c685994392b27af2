package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"park-system/internal/database"
	"park-system/internal/models"
)

// TicketRepository handles ticket data operations
type TicketRepository struct {
	col *mongo.Collection
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{col: db.Collection(database.CollectionTickets)}
}

// Insert stores a new ticket
func (r *TicketRepository) Insert(ctx context.Context, ticket *models.Ticket) error {
	_, err := r.col.InsertOne(ctx, ticket)
	if err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}
	return nil
}

// GetByTicketID retrieves a ticket by its ID
func (r *TicketRepository) GetByTicketID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	err := r.col.FindOne(ctx, bson.M{"ticket_id": ticketID}).Decode(ticket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return ticket, nil
}

// FindByOwner retrieves an owner's tickets, optionally filtered by status.
// An empty status returns all of the owner's tickets.
func (r *TicketRepository) FindByOwner(ctx context.Context, ownerID string, status models.TicketStatus) ([]*models.Ticket, error) {
	filter := bson.M{"owner_id": ownerID}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "visit_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []*models.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode tickets: %w", err)
	}
	return tickets, nil
}

// FindByOrder retrieves all tickets issued for an order.
func (r *TicketRepository) FindByOrder(ctx context.Context, orderNumber string) ([]*models.Ticket, error) {
	cursor, err := r.col.Find(ctx, bson.M{"order_number": orderNumber})
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []*models.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode tickets: %w", err)
	}
	return tickets, nil
}

// UpdateStatus sets the status of a ticket
func (r *TicketRepository) UpdateStatus(ctx context.Context, ticketID string, status models.TicketStatus) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"ticket_id": ticketID},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrTicketNotFound
	}
	return nil
}

// UpdateVisitDate moves a ticket to a new visit date.
func (r *TicketRepository) UpdateVisitDate(ctx context.Context, ticketID, visitDate string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"ticket_id": ticketID},
		bson.M{"$set": bson.M{"visit_date": visitDate}})
	if err != nil {
		return fmt.Errorf("failed to update ticket visit date: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrTicketNotFound
	}
	return nil
}

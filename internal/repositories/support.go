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

// SupportRepository handles support ticket data operations
type SupportRepository struct {
	col *mongo.Collection
}

// NewSupportRepository creates a new support repository
func NewSupportRepository(db *database.DB) *SupportRepository {
	return &SupportRepository{col: db.Collection(database.CollectionSupportTickets)}
}

// Insert stores a new support ticket
func (r *SupportRepository) Insert(ctx context.Context, ticket *models.SupportTicket) error {
	if err := ticket.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, err := r.col.InsertOne(ctx, ticket)
	if err != nil {
		return fmt.Errorf("failed to insert support ticket: %w", err)
	}
	return nil
}

// GetByID retrieves a support ticket by its short ID
func (r *SupportRepository) GetByID(ctx context.Context, id string) (*models.SupportTicket, error) {
	ticket := &models.SupportTicket{}
	err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(ticket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get support ticket: %w", err)
	}
	return ticket, nil
}

// GetOpen retrieves all open support tickets, oldest first.
func (r *SupportRepository) GetOpen(ctx context.Context) ([]*models.SupportTicket, error) {
	cursor, err := r.col.Find(ctx,
		bson.M{"status": models.SupportOpen},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list support tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []*models.SupportTicket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode support tickets: %w", err)
	}
	return tickets, nil
}

// GetByUser retrieves a user's support tickets, newest first.
func (r *SupportRepository) GetByUser(ctx context.Context, userID string) ([]*models.SupportTicket, error) {
	cursor, err := r.col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list support tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []*models.SupportTicket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode support tickets: %w", err)
	}
	return tickets, nil
}

// Resolve marks an open support ticket resolved with the given note.
func (r *SupportRepository) Resolve(ctx context.Context, id, resolution string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"id": id, "status": models.SupportOpen},
		bson.M{"$set": bson.M{"status": models.SupportResolved, "resolution": resolution}})
	if err != nil {
		return fmt.Errorf("failed to resolve support ticket: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrTicketNotFound
	}
	return nil
}

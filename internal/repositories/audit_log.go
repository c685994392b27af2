package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"park-system/internal/database"
	"park-system/internal/models"
)

// AuditLogRepository handles audit log data operations
type AuditLogRepository struct {
	col *mongo.Collection
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *database.DB) *AuditLogRepository {
	return &AuditLogRepository{col: db.Collection(database.CollectionAuditLogs)}
}

// Insert stores an audit log entry
func (r *AuditLogRepository) Insert(ctx context.Context, entry *models.AuditLog) error {
	_, err := r.col.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

// GetAll retrieves audit log entries, newest first, capped at limit.
// A limit of zero or less returns everything.
func (r *AuditLogRepository) GetAll(ctx context.Context, limit int64) ([]*models.AuditLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.AuditLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit logs: %w", err)
	}
	return entries, nil
}

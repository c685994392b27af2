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

// OrderRepository handles order data operations
type OrderRepository struct {
	col *mongo.Collection
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{col: db.Collection(database.CollectionOrders)}
}

// Insert stores a new order
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	if err := order.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// GetByOrderNumber retrieves an order by its order number
func (r *OrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	order := &models.Order{}
	err := r.col.FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// GetByUser retrieves a user's orders, newest first.
func (r *OrderRepository) GetByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// GetAll retrieves all orders, newest first.
func (r *OrderRepository) GetAll(ctx context.Context) ([]*models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]*models.Order, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the status of an order
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderNumber string, status models.OrderStatus) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"order_number": orderNumber},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}

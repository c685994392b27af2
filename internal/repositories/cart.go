package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"park-system/internal/database"
	"park-system/internal/models"
)

// CartRepository handles cart data operations. Each user has at most one
// cart document, keyed by user_id.
type CartRepository struct {
	col *mongo.Collection
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *database.DB) *CartRepository {
	return &CartRepository{col: db.Collection(database.CollectionCarts)}
}

// Get retrieves the user's cart. A user with no stored cart gets a fresh
// empty one.
func (r *CartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	cart := &models.Cart{}
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.NewCart(userID), nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

// Save upserts the user's cart document.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	_, err := r.col.ReplaceOne(ctx, bson.M{"user_id": cart.UserID}, cart, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the user's cart. Deleting an absent cart is not an error.
func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

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

// MerchandiseRepository handles merchandise data operations
type MerchandiseRepository struct {
	col *mongo.Collection
}

// NewMerchandiseRepository creates a new merchandise repository
func NewMerchandiseRepository(db *database.DB) *MerchandiseRepository {
	return &MerchandiseRepository{col: db.Collection(database.CollectionMerchandise)}
}

// GetAll retrieves all merchandise items, ordered by SKU.
func (r *MerchandiseRepository) GetAll(ctx context.Context) ([]*models.Merchandise, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "sku", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list merchandise: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*models.Merchandise
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode merchandise: %w", err)
	}
	return items, nil
}

// GetBySKU retrieves a merchandise item by SKU
func (r *MerchandiseRepository) GetBySKU(ctx context.Context, sku string) (*models.Merchandise, error) {
	item := &models.Merchandise{}
	err := r.col.FindOne(ctx, bson.M{"sku": sku}).Decode(item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrMerchandiseNotFound
		}
		return nil, fmt.Errorf("failed to get merchandise: %w", err)
	}
	return item, nil
}

// Save upserts the merchandise document keyed by SKU.
func (r *MerchandiseRepository) Save(ctx context.Context, item *models.Merchandise) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, err := r.col.ReplaceOne(ctx, bson.M{"sku": item.SKU}, item, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save merchandise: %w", err)
	}
	return nil
}

// Delete removes a merchandise item by SKU
func (r *MerchandiseRepository) Delete(ctx context.Context, sku string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"sku": sku})
	if err != nil {
		return fmt.Errorf("failed to delete merchandise: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrMerchandiseNotFound
	}
	return nil
}

// DecrementStock atomically reduces stock by qty. The filter requires at
// least qty units on hand, so stock can never go negative; a miss means
// the item is gone or out of stock.
func (r *MerchandiseRepository) DecrementStock(ctx context.Context, sku string, qty int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"sku": sku, "stock_quantity": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock_quantity": -qty}})
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrOutOfStock
	}
	return nil
}

// IncrementStock adds qty units back to stock.
func (r *MerchandiseRepository) IncrementStock(ctx context.Context, sku string, qty int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"sku": sku},
		bson.M{"$inc": bson.M{"stock_quantity": qty}})
	if err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrMerchandiseNotFound
	}
	return nil
}

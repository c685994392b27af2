package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used throughout the application
const (
	CollectionUsers          = "users"
	CollectionParks          = "parks"
	CollectionMerchandise    = "merchandise"
	CollectionOrders         = "orders"
	CollectionCarts          = "carts"
	CollectionTickets        = "tickets"
	CollectionSupportTickets = "support_tickets"
	CollectionAuditLogs      = "audit_logs"
)

type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

type Config struct {
	URI            string
	Name           string
	ConnectTimeout time.Duration
}

func NewConnection(config Config) (*DB, error) {
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		client:   client,
		database: client.Database(config.Name),
	}, nil
}

func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// Collection returns a handle to the named collection.
func (db *DB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

// Drop removes the entire database. Used by the reseed tool.
func (db *DB) Drop(ctx context.Context) error {
	return db.database.Drop(ctx)
}

// WithTransaction runs fn inside a multi-document transaction when the
// deployment supports sessions (replica set or mongos). On standalone
// servers, which reject transactions, fn runs directly; every stock and
// occupancy write is individually conditional, so the only exposure in
// that mode is the small window between validation and write.
func (db *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := db.client.StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && transactionsUnsupported(err) {
		return fn(ctx)
	}
	return err
}

// transactionsUnsupported reports whether err indicates the server cannot
// run transactions at all (e.g. a standalone mongod). The first statement
// in the transaction fails before any write lands, so retrying outside a
// transaction is safe.
func transactionsUnsupported(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Transaction numbers are only allowed") ||
		strings.Contains(msg, "transactions are not supported")
}

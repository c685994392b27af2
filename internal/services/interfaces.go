package services

import (
	"context"

	"park-system/internal/models"
)

// Transactor runs a function inside a database transaction where the
// deployment supports one, and directly against the database otherwise.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines user data operations needed by services
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, userID string, profile models.CustomerProfile) error
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// ParkRepository defines park data operations needed by services
type ParkRepository interface {
	GetAll(ctx context.Context) ([]*models.Park, error)
	GetByParkID(ctx context.Context, parkID string) (*models.Park, error)
	Save(ctx context.Context, park *models.Park) error
	Delete(ctx context.Context, parkID string) error
	UpdateSchedules(ctx context.Context, parkID string, schedules []models.Schedule) error
	BookSpots(ctx context.Context, parkID, visitDate string, spots int) error
	ReleaseSpots(ctx context.Context, parkID, visitDate string, spots int) error
	Count(ctx context.Context) (int64, error)
}

// MerchandiseRepository defines merchandise data operations needed by services
type MerchandiseRepository interface {
	GetAll(ctx context.Context) ([]*models.Merchandise, error)
	GetBySKU(ctx context.Context, sku string) (*models.Merchandise, error)
	Save(ctx context.Context, item *models.Merchandise) error
	Delete(ctx context.Context, sku string) error
	DecrementStock(ctx context.Context, sku string, qty int) error
	IncrementStock(ctx context.Context, sku string, qty int) error
}

// OrderRepository defines order data operations needed by services
type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	GetByUser(ctx context.Context, userID string) ([]*models.Order, error)
	GetAll(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, status models.OrderStatus) error
}

// TicketRepository defines ticket data operations needed by services
type TicketRepository interface {
	Insert(ctx context.Context, ticket *models.Ticket) error
	GetByTicketID(ctx context.Context, ticketID string) (*models.Ticket, error)
	FindByOwner(ctx context.Context, ownerID string, status models.TicketStatus) ([]*models.Ticket, error)
	FindByOrder(ctx context.Context, orderNumber string) ([]*models.Ticket, error)
	UpdateStatus(ctx context.Context, ticketID string, status models.TicketStatus) error
	UpdateVisitDate(ctx context.Context, ticketID, visitDate string) error
}

// CartRepository defines cart data operations needed by services
type CartRepository interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, userID string) error
}

// SupportRepository defines support ticket data operations needed by services
type SupportRepository interface {
	Insert(ctx context.Context, ticket *models.SupportTicket) error
	GetByID(ctx context.Context, id string) (*models.SupportTicket, error)
	GetOpen(ctx context.Context) ([]*models.SupportTicket, error)
	GetByUser(ctx context.Context, userID string) ([]*models.SupportTicket, error)
	Resolve(ctx context.Context, id, resolution string) error
}

// AuditLogRepository defines audit log data operations needed by services
type AuditLogRepository interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
	GetAll(ctx context.Context, limit int64) ([]*models.AuditLog, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"park-system/internal/models"
)

// CatalogService owns the park and merchandise inventory: customer-facing
// listings and the admin CRUD operations over both.
type CatalogService struct {
	parks ParkRepository
	merch MerchandiseRepository
	audit AuditLogRepository
	log   *logrus.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(parks ParkRepository, merch MerchandiseRepository, audit AuditLogRepository, log *logrus.Logger) *CatalogService {
	return &CatalogService{parks: parks, merch: merch, audit: audit, log: log}
}

// ListParks returns all parks ordered by park id.
func (s *CatalogService) ListParks(ctx context.Context) ([]*models.Park, error) {
	return s.parks.GetAll(ctx)
}

// GetPark returns a single park by id.
func (s *CatalogService) GetPark(ctx context.Context, parkID string) (*models.Park, error) {
	return s.parks.GetByParkID(ctx, parkID)
}

// CreatePark adds a park with a fresh sequential id.
func (s *CatalogService) CreatePark(ctx context.Context, adminID string, park *models.Park) (*models.Park, error) {
	count, err := s.parks.Count(ctx)
	if err != nil {
		return nil, err
	}
	park.ParkID = models.NewParkID(count + 1)

	if err := s.parks.Save(ctx, park); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, adminID, fmt.Sprintf("created park %s (%s)", park.ParkID, park.Name))
	s.log.WithFields(logrus.Fields{"park_id": park.ParkID}).Info("park created")
	return park, nil
}

// UpdatePark persists edits to an existing park.
func (s *CatalogService) UpdatePark(ctx context.Context, adminID string, park *models.Park) error {
	if _, err := s.parks.GetByParkID(ctx, park.ParkID); err != nil {
		return err
	}
	if err := s.parks.Save(ctx, park); err != nil {
		return err
	}
	s.recordAudit(ctx, adminID, fmt.Sprintf("updated park %s", park.ParkID))
	return nil
}

// DeletePark removes a park from the catalog.
func (s *CatalogService) DeletePark(ctx context.Context, adminID, parkID string) error {
	if err := s.parks.Delete(ctx, parkID); err != nil {
		return err
	}
	s.recordAudit(ctx, adminID, fmt.Sprintf("deleted park %s", parkID))
	return nil
}

// AddSchedule opens a new visit date for a park.
func (s *CatalogService) AddSchedule(ctx context.Context, adminID, parkID, visitDate string) error {
	park, err := s.parks.GetByParkID(ctx, parkID)
	if err != nil {
		return err
	}
	if err := park.AddSchedule(visitDate); err != nil {
		return err
	}
	if err := s.parks.UpdateSchedules(ctx, parkID, park.Schedules); err != nil {
		return err
	}
	s.recordAudit(ctx, adminID, fmt.Sprintf("added schedule %s to park %s", visitDate, parkID))
	return nil
}

// RemoveSchedule closes a visit date for a park.
func (s *CatalogService) RemoveSchedule(ctx context.Context, adminID, parkID, visitDate string) error {
	park, err := s.parks.GetByParkID(ctx, parkID)
	if err != nil {
		return err
	}
	if err := park.RemoveSchedule(visitDate); err != nil {
		return err
	}
	if err := s.parks.UpdateSchedules(ctx, parkID, park.Schedules); err != nil {
		return err
	}
	s.recordAudit(ctx, adminID, fmt.Sprintf("removed schedule %s from park %s", visitDate, parkID))
	return nil
}

// SetMaxCapacity changes a park's capacity. Rejected when it would fall
// below any schedule's current occupancy.
func (s *CatalogService) SetMaxCapacity(ctx context.Context, adminID, parkID string, capacity int) error {
	park, err := s.parks.GetByParkID(ctx, parkID)
	if err != nil {
		return err
	}
	if err := park.UpdateMaxCapacity(capacity); err != nil {
		return err
	}
	if err := s.parks.Save(ctx, park); err != nil {
		return err
	}
	s.recordAudit(ctx, adminID, fmt.Sprintf("set park %s capacity to %d", parkID, capacity))
	return nil
}

// SetTicketPrice sets a park's ticket price in cents.
func (s *CatalogService) SetTicketPrice(ctx context.Context, adminID, parkID string, price int) error {
	if price < 0 {
		return errors.New("ticket price cannot be negative")
	}
	park, err := s.parks.GetByParkID(ctx, parkID)
	if err != nil {
		return err
	}
	park.TicketPrice = &price
	if err := s.parks.Save(ctx, park); err != nil {
		return err
	}
	s.recordAudit(ctx, adminID, fmt.Sprintf("set park %s ticket price to %d", parkID, price))
	return nil
}

// ListMerchandise returns all merchandise ordered by SKU.
func (s *CatalogService) ListMerchandise(ctx context.Context) ([]*models.Merchandise, error) {
	return s.merch.GetAll(ctx)
}

// GetMerchandise returns a single item by SKU.
func (s *CatalogService) GetMerchandise(ctx context.Context, sku string) (*models.Merchandise, error) {
	return s.merch.GetBySKU(ctx, sku)
}

// CreateMerchandise adds a new item. An existing SKU is rejected.
func (s *CatalogService) CreateMerchandise(ctx context.Context, adminID string, item *models.Merchandise) error {
	if _, err := s.merch.GetBySKU(ctx, item.SKU); err == nil {
		return models.ErrDuplicateSKU
	} else if !errors.Is(err, models.ErrMerchandiseNotFound) {
		return err
	}

	if err := s.merch.Save(ctx, item); err != nil {
		return err
	}
	s.recordAudit(ctx, adminID, fmt.Sprintf("created merchandise %s (%s)", item.SKU, item.Name))
	s.log.WithFields(logrus.Fields{"sku": item.SKU}).Info("merchandise created")
	return nil
}

// UpdateMerchandise persists edits to an existing item.
func (s *CatalogService) UpdateMerchandise(ctx context.Context, adminID string, item *models.Merchandise) error {
	if _, err := s.merch.GetBySKU(ctx, item.SKU); err != nil {
		return err
	}
	if err := s.merch.Save(ctx, item); err != nil {
		return err
	}
	s.recordAudit(ctx, adminID, fmt.Sprintf("updated merchandise %s", item.SKU))
	return nil
}

// RestockMerchandise adds qty units to an item's stock. The increment is
// applied atomically so it cannot clobber a concurrent sale.
func (s *CatalogService) RestockMerchandise(ctx context.Context, adminID, sku string, qty int) error {
	if qty <= 0 {
		return errors.New("restock quantity must be positive")
	}
	if err := s.merch.IncrementStock(ctx, sku, qty); err != nil {
		return err
	}
	s.recordAudit(ctx, adminID, fmt.Sprintf("restocked merchandise %s (+%d)", sku, qty))
	s.log.WithFields(logrus.Fields{"sku": sku, "qty": qty}).Info("merchandise restocked")
	return nil
}

// DeleteMerchandise removes an item from the catalog.
func (s *CatalogService) DeleteMerchandise(ctx context.Context, adminID, sku string) error {
	if err := s.merch.Delete(ctx, sku); err != nil {
		return err
	}
	s.recordAudit(ctx, adminID, fmt.Sprintf("deleted merchandise %s", sku))
	return nil
}

func (s *CatalogService) recordAudit(ctx context.Context, adminID, action string) {
	entry := &models.AuditLog{
		Timestamp: time.Now(),
		Category:  models.AuditSystem,
		User:      adminID,
		Action:    action,
	}
	if err := s.audit.Insert(ctx, entry); err != nil {
		s.log.WithError(err).Warn("failed to write audit log")
	}
}

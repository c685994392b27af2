package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"park-system/internal/models"
)

// CheckoutService owns the cart lifecycle: adding and removing lines,
// and turning a cart into a persisted order with issued tickets.
type CheckoutService struct {
	tx      Transactor
	parks   ParkRepository
	merch   MerchandiseRepository
	orders  OrderRepository
	tickets TicketRepository
	carts   CartRepository
	audit   AuditLogRepository
	log     *logrus.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	tx Transactor,
	parks ParkRepository,
	merch MerchandiseRepository,
	orders OrderRepository,
	tickets TicketRepository,
	carts CartRepository,
	audit AuditLogRepository,
	log *logrus.Logger,
) *CheckoutService {
	return &CheckoutService{
		tx:      tx,
		parks:   parks,
		merch:   merch,
		orders:  orders,
		tickets: tickets,
		carts:   carts,
		audit:   audit,
		log:     log,
	}
}

// GetCart returns the user's persisted cart, empty if none exists.
func (s *CheckoutService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	return s.carts.Get(ctx, userID)
}

// AddTicketItem adds qty park tickets for visitDate to the user's cart.
// Capacity is checked against the schedule's occupancy plus whatever the
// cart already reserves for that date.
func (s *CheckoutService) AddTicketItem(ctx context.Context, userID, parkID, visitDate string, qty int) (*models.Cart, error) {
	if qty <= 0 {
		return nil, models.ErrInvalidQuantity
	}
	if err := models.ValidateVisitDate(visitDate); err != nil {
		return nil, err
	}

	park, err := s.parks.GetByParkID(ctx, parkID)
	if err != nil {
		return nil, err
	}
	if !park.HasTicketPrice() {
		return nil, models.ErrPriceNotSet
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	// A date without a schedule is still bookable; the schedule is
	// created at checkout with zero occupancy.
	remaining := park.MaxCapacity
	if schedule := park.FindSchedule(visitDate); schedule != nil {
		remaining = park.Remaining(*schedule)
	}
	reserved := cart.QuantityFor(models.ItemTicket, parkID, visitDate)
	if reserved+qty > remaining {
		return nil, models.ErrScheduleFull
	}

	cart.Add(models.CartItem{
		Kind:      models.ItemTicket,
		Ref:       park.ParkID,
		Name:      park.Name,
		Quantity:  qty,
		UnitPrice: *park.TicketPrice,
		VisitDate: visitDate,
	})

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddMerchItem adds qty units of a merchandise item to the user's cart.
// Stock is checked against what the cart already holds for that SKU.
func (s *CheckoutService) AddMerchItem(ctx context.Context, userID, sku string, qty int) (*models.Cart, error) {
	if qty <= 0 {
		return nil, models.ErrInvalidQuantity
	}

	item, err := s.merch.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	reserved := cart.QuantityFor(models.ItemMerchandise, sku, "")
	if !item.InStock(reserved + qty) {
		return nil, models.ErrOutOfStock
	}

	cart.Add(models.CartItem{
		Kind:      models.ItemMerchandise,
		Ref:       item.SKU,
		Name:      item.Name,
		Quantity:  qty,
		UnitPrice: item.Price,
	})

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes a line from the user's cart
func (s *CheckoutService) RemoveItem(ctx context.Context, userID string, kind models.ItemKind, ref, visitDate string) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := cart.Remove(kind, ref, visitDate); err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Checkout turns the user's cart into an order. Park capacity and
// merchandise stock are claimed with conditional updates, one ticket is
// issued per seat, and the persisted cart is cleared. Everything runs
// inside one logical transaction.
func (s *CheckoutService) Checkout(ctx context.Context, userID string) (*models.Order, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	order := &models.Order{
		OrderNumber: models.GenerateOrderNumber(),
		UserID:      userID,
		TotalAmount: cart.Total(),
		Status:      models.OrderCompleted,
		CreatedAt:   time.Now(),
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, item := range cart.Items {
			line := models.OrderLine{
				Kind:      item.Kind,
				Ref:       item.Ref,
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				VisitDate: item.VisitDate,
			}

			switch item.Kind {
			case models.ItemTicket:
				if err := s.ensureSchedule(ctx, item.Ref, item.VisitDate); err != nil {
					return err
				}
				if err := s.parks.BookSpots(ctx, item.Ref, item.VisitDate, item.Quantity); err != nil {
					return err
				}
				for i := 0; i < item.Quantity; i++ {
					ticket := models.NewTicket(userID, item.Ref, item.Name, item.VisitDate, item.UnitPrice)
					ticket.OrderNumber = order.OrderNumber
					if err := s.tickets.Insert(ctx, ticket); err != nil {
						return err
					}
					line.TicketIDs = append(line.TicketIDs, ticket.TicketID)
				}
			case models.ItemMerchandise:
				if err := s.merch.DecrementStock(ctx, item.Ref, item.Quantity); err != nil {
					return err
				}
			}

			order.Items = append(order.Items, line)
		}

		if err := s.orders.Insert(ctx, order); err != nil {
			return err
		}
		return s.carts.Delete(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	s.recordAudit(ctx, models.AuditOrder, userID,
		fmt.Sprintf("placed order %s for %.2f", order.OrderNumber, order.TotalInCurrency()))

	s.log.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total_cents":  order.TotalAmount,
		"lines":        len(order.Items),
	}).Info("order placed")

	return order, nil
}

// ensureSchedule creates an empty schedule for visitDate if the park does
// not have one yet.
func (s *CheckoutService) ensureSchedule(ctx context.Context, parkID, visitDate string) error {
	park, err := s.parks.GetByParkID(ctx, parkID)
	if err != nil {
		return err
	}
	if park.FindSchedule(visitDate) != nil {
		return nil
	}
	if err := park.AddSchedule(visitDate); err != nil {
		return err
	}
	return s.parks.UpdateSchedules(ctx, parkID, park.Schedules)
}

func (s *CheckoutService) recordAudit(ctx context.Context, category, userID, action string) {
	entry := &models.AuditLog{
		Timestamp: time.Now(),
		Category:  category,
		User:      userID,
		Action:    action,
	}
	if err := s.audit.Insert(ctx, entry); err != nil {
		s.log.WithError(err).Warn("failed to write audit log")
	}
}

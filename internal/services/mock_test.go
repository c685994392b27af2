package services

import (
	"context"
	"errors"
	"sort"

	"park-system/internal/models"
)

// Mock implementations for testing

type mockTransactor struct{}

func (mockTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockUserRepository struct {
	users         map[string]*models.User
	shouldFailOps map[string]bool
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:         make(map[string]*models.User),
		shouldFailOps: make(map[string]bool),
	}
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if m.shouldFailOps["GetByEmail"] {
		return nil, errors.New("mock error")
	}
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *mockUserRepository) GetByID(_ context.Context, userID string) (*models.User, error) {
	if m.shouldFailOps["GetByID"] {
		return nil, errors.New("mock error")
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) Create(_ context.Context, user *models.User) error {
	if m.shouldFailOps["Create"] {
		return errors.New("mock error")
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return models.ErrDuplicateEmail
		}
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepository) UpdateProfile(_ context.Context, userID string, profile models.CustomerProfile) error {
	u, ok := m.users[userID]
	if !ok {
		return models.ErrUserNotFound
	}
	if profile.AgeGroup != "" {
		u.AgeGroup = profile.AgeGroup
	}
	if profile.Gender != "" {
		u.Gender = profile.Gender
	}
	if profile.Region != "" {
		u.Region = profile.Region
	}
	if profile.VisitorType != "" {
		u.VisitorType = profile.VisitorType
	}
	if profile.MarketingOptIn != nil {
		u.MarketingOptIn = *profile.MarketingOptIn
	}
	return nil
}

func (m *mockUserRepository) UpdatePasswordHash(_ context.Context, userID, hash string) error {
	u, ok := m.users[userID]
	if !ok {
		return models.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *mockUserRepository) CountByRole(_ context.Context, role models.Role) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *mockUserRepository) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

type mockParkRepository struct {
	parks         map[string]*models.Park
	shouldFailOps map[string]bool
}

func newMockParkRepository() *mockParkRepository {
	return &mockParkRepository{
		parks:         make(map[string]*models.Park),
		shouldFailOps: make(map[string]bool),
	}
}

func (m *mockParkRepository) GetAll(_ context.Context) ([]*models.Park, error) {
	if m.shouldFailOps["GetAll"] {
		return nil, errors.New("mock error")
	}
	var result []*models.Park
	for _, p := range m.parks {
		copied := *p
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ParkID < result[j].ParkID })
	return result, nil
}

func (m *mockParkRepository) GetByParkID(_ context.Context, parkID string) (*models.Park, error) {
	if m.shouldFailOps["GetByParkID"] {
		return nil, errors.New("mock error")
	}
	p, ok := m.parks[parkID]
	if !ok {
		return nil, models.ErrParkNotFound
	}
	copied := *p
	copied.Schedules = append([]models.Schedule(nil), p.Schedules...)
	return &copied, nil
}

func (m *mockParkRepository) Save(_ context.Context, park *models.Park) error {
	if m.shouldFailOps["Save"] {
		return errors.New("mock error")
	}
	if err := park.Validate(); err != nil {
		return err
	}
	m.parks[park.ParkID] = park
	return nil
}

func (m *mockParkRepository) Delete(_ context.Context, parkID string) error {
	if _, ok := m.parks[parkID]; !ok {
		return models.ErrParkNotFound
	}
	delete(m.parks, parkID)
	return nil
}

func (m *mockParkRepository) UpdateSchedules(_ context.Context, parkID string, schedules []models.Schedule) error {
	p, ok := m.parks[parkID]
	if !ok {
		return models.ErrParkNotFound
	}
	p.Schedules = schedules
	return nil
}

func (m *mockParkRepository) BookSpots(_ context.Context, parkID, visitDate string, qty int) error {
	if m.shouldFailOps["BookSpots"] {
		return errors.New("mock error")
	}
	p, ok := m.parks[parkID]
	if !ok {
		return models.ErrParkNotFound
	}
	schedule := p.FindSchedule(visitDate)
	if schedule == nil {
		return models.ErrScheduleNotFound
	}
	if schedule.CurrentOccupancy+qty > p.MaxCapacity {
		return models.ErrScheduleFull
	}
	schedule.CurrentOccupancy += qty
	return nil
}

func (m *mockParkRepository) ReleaseSpots(_ context.Context, parkID, visitDate string, qty int) error {
	p, ok := m.parks[parkID]
	if !ok {
		return models.ErrParkNotFound
	}
	schedule := p.FindSchedule(visitDate)
	if schedule == nil {
		return models.ErrScheduleNotFound
	}
	schedule.CurrentOccupancy -= qty
	if schedule.CurrentOccupancy < 0 {
		schedule.CurrentOccupancy = 0
	}
	return nil
}

func (m *mockParkRepository) Count(_ context.Context) (int64, error) {
	return int64(len(m.parks)), nil
}

type mockMerchandiseRepository struct {
	items         map[string]*models.Merchandise
	shouldFailOps map[string]bool
}

func newMockMerchandiseRepository() *mockMerchandiseRepository {
	return &mockMerchandiseRepository{
		items:         make(map[string]*models.Merchandise),
		shouldFailOps: make(map[string]bool),
	}
}

func (m *mockMerchandiseRepository) GetAll(_ context.Context) ([]*models.Merchandise, error) {
	var result []*models.Merchandise
	for _, item := range m.items {
		copied := *item
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SKU < result[j].SKU })
	return result, nil
}

func (m *mockMerchandiseRepository) GetBySKU(_ context.Context, sku string) (*models.Merchandise, error) {
	if m.shouldFailOps["GetBySKU"] {
		return nil, errors.New("mock error")
	}
	item, ok := m.items[sku]
	if !ok {
		return nil, models.ErrMerchandiseNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *mockMerchandiseRepository) Save(_ context.Context, item *models.Merchandise) error {
	if err := item.Validate(); err != nil {
		return err
	}
	m.items[item.SKU] = item
	return nil
}

func (m *mockMerchandiseRepository) Delete(_ context.Context, sku string) error {
	if _, ok := m.items[sku]; !ok {
		return models.ErrMerchandiseNotFound
	}
	delete(m.items, sku)
	return nil
}

func (m *mockMerchandiseRepository) DecrementStock(_ context.Context, sku string, qty int) error {
	if m.shouldFailOps["DecrementStock"] {
		return errors.New("mock error")
	}
	item, ok := m.items[sku]
	if !ok || item.StockQuantity < qty {
		return models.ErrOutOfStock
	}
	item.StockQuantity -= qty
	return nil
}

func (m *mockMerchandiseRepository) IncrementStock(_ context.Context, sku string, qty int) error {
	item, ok := m.items[sku]
	if !ok {
		return models.ErrMerchandiseNotFound
	}
	item.StockQuantity += qty
	return nil
}

type mockOrderRepository struct {
	orders        []*models.Order
	shouldFailOps map[string]bool
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{shouldFailOps: make(map[string]bool)}
}

func (m *mockOrderRepository) Insert(_ context.Context, order *models.Order) error {
	if m.shouldFailOps["Insert"] {
		return errors.New("mock error")
	}
	if err := order.Validate(); err != nil {
		return err
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockOrderRepository) GetByOrderNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	for _, o := range m.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, models.ErrOrderNotFound
}

func (m *mockOrderRepository) GetByUser(_ context.Context, userID string) ([]*models.Order, error) {
	var result []*models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *mockOrderRepository) GetAll(_ context.Context) ([]*models.Order, error) {
	if m.shouldFailOps["GetAll"] {
		return nil, errors.New("mock error")
	}
	return append([]*models.Order(nil), m.orders...), nil
}

func (m *mockOrderRepository) UpdateStatus(_ context.Context, orderNumber string, status models.OrderStatus) error {
	for _, o := range m.orders {
		if o.OrderNumber == orderNumber {
			o.Status = status
			return nil
		}
	}
	return models.ErrOrderNotFound
}

type mockTicketRepository struct {
	tickets       map[string]*models.Ticket
	shouldFailOps map[string]bool
}

func newMockTicketRepository() *mockTicketRepository {
	return &mockTicketRepository{
		tickets:       make(map[string]*models.Ticket),
		shouldFailOps: make(map[string]bool),
	}
}

func (m *mockTicketRepository) Insert(_ context.Context, ticket *models.Ticket) error {
	if m.shouldFailOps["Insert"] {
		return errors.New("mock error")
	}
	m.tickets[ticket.TicketID] = ticket
	return nil
}

func (m *mockTicketRepository) GetByTicketID(_ context.Context, ticketID string) (*models.Ticket, error) {
	t, ok := m.tickets[ticketID]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *mockTicketRepository) FindByOwner(_ context.Context, ownerID string, status models.TicketStatus) ([]*models.Ticket, error) {
	var result []*models.Ticket
	for _, t := range m.tickets {
		if t.OwnerID != ownerID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].VisitDate < result[j].VisitDate })
	return result, nil
}

func (m *mockTicketRepository) FindByOrder(_ context.Context, orderNumber string) ([]*models.Ticket, error) {
	var result []*models.Ticket
	for _, t := range m.tickets {
		if t.OrderNumber == orderNumber {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockTicketRepository) UpdateStatus(_ context.Context, ticketID string, status models.TicketStatus) error {
	t, ok := m.tickets[ticketID]
	if !ok {
		return models.ErrTicketNotFound
	}
	t.Status = status
	return nil
}

func (m *mockTicketRepository) UpdateVisitDate(_ context.Context, ticketID, visitDate string) error {
	t, ok := m.tickets[ticketID]
	if !ok {
		return models.ErrTicketNotFound
	}
	t.VisitDate = visitDate
	return nil
}

type mockCartRepository struct {
	carts         map[string]*models.Cart
	shouldFailOps map[string]bool
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{
		carts:         make(map[string]*models.Cart),
		shouldFailOps: make(map[string]bool),
	}
}

func (m *mockCartRepository) Get(_ context.Context, userID string) (*models.Cart, error) {
	if m.shouldFailOps["Get"] {
		return nil, errors.New("mock error")
	}
	cart, ok := m.carts[userID]
	if !ok {
		return models.NewCart(userID), nil
	}
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (m *mockCartRepository) Save(_ context.Context, cart *models.Cart) error {
	if m.shouldFailOps["Save"] {
		return errors.New("mock error")
	}
	m.carts[cart.UserID] = cart
	return nil
}

func (m *mockCartRepository) Delete(_ context.Context, userID string) error {
	delete(m.carts, userID)
	return nil
}

type mockSupportRepository struct {
	tickets map[string]*models.SupportTicket
}

func newMockSupportRepository() *mockSupportRepository {
	return &mockSupportRepository{tickets: make(map[string]*models.SupportTicket)}
}

func (m *mockSupportRepository) Insert(_ context.Context, ticket *models.SupportTicket) error {
	if err := ticket.Validate(); err != nil {
		return err
	}
	m.tickets[ticket.ID] = ticket
	return nil
}

func (m *mockSupportRepository) GetByID(_ context.Context, id string) (*models.SupportTicket, error) {
	t, ok := m.tickets[id]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	return t, nil
}

func (m *mockSupportRepository) GetOpen(_ context.Context) ([]*models.SupportTicket, error) {
	var result []*models.SupportTicket
	for _, t := range m.tickets {
		if t.Status == models.SupportOpen {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *mockSupportRepository) GetByUser(_ context.Context, userID string) ([]*models.SupportTicket, error) {
	var result []*models.SupportTicket
	for _, t := range m.tickets {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockSupportRepository) Resolve(_ context.Context, id, resolution string) error {
	t, ok := m.tickets[id]
	if !ok || t.Status != models.SupportOpen {
		return models.ErrTicketNotFound
	}
	t.Status = models.SupportResolved
	t.Resolution = resolution
	return nil
}

type mockAuditLogRepository struct {
	entries []*models.AuditLog
}

func newMockAuditLogRepository() *mockAuditLogRepository {
	return &mockAuditLogRepository{}
}

func (m *mockAuditLogRepository) Insert(_ context.Context, entry *models.AuditLog) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditLogRepository) GetAll(_ context.Context, limit int64) ([]*models.AuditLog, error) {
	result := append([]*models.AuditLog(nil), m.entries...)
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	if limit > 0 && int64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"park-system/internal/models"
)

// UnknownBucket is where customers without usable demographics land in
// demographic reports. Profiles of customers who did not opt into
// marketing are never read.
const UnknownBucket = "UNKNOWN"

// Summary is the headline revenue report.
type Summary struct {
	TotalRevenue int // cents, completed orders only
	OrderCount   int
	Refunded     int
}

// ParkRevenue is ticket revenue attributed to one park.
type ParkRevenue struct {
	ParkID  string
	Name    string
	Tickets int
	Revenue int // cents
}

// StatusBreakdown is order count and value for one payment status.
type StatusBreakdown struct {
	Status models.OrderStatus
	Orders int
	Value  int // cents
}

// MerchSales is units sold and revenue for one SKU.
type MerchSales struct {
	SKU     string
	Name    string
	Units   int
	Revenue int // cents
}

// BucketRevenue is revenue attributed to one demographic bucket.
type BucketRevenue struct {
	Bucket  string
	Revenue int // cents
}

// BucketCount is a visitor count for one demographic bucket.
type BucketCount struct {
	Bucket string
	Count  int
}

// ReportService computes admin analytics over the order history.
type ReportService struct {
	orders OrderRepository
	users  UserRepository
	log    *logrus.Logger
}

// NewReportService creates a new report service
func NewReportService(orders OrderRepository, users UserRepository, log *logrus.Logger) *ReportService {
	return &ReportService{orders: orders, users: users, log: log}
}

// GetSummary returns overall revenue and order counts. Revenue counts
// completed orders only.
func (s *ReportService) GetSummary(ctx context.Context) (*Summary, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{OrderCount: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case models.OrderCompleted:
			summary.TotalRevenue += o.TotalAmount
		case models.OrderRefunded:
			summary.Refunded++
		}
	}
	return summary, nil
}

// TicketRevenueByPark aggregates ticket line revenue per park.
func (s *ReportService) TicketRevenueByPark(ctx context.Context) ([]ParkRevenue, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byPark := make(map[string]*ParkRevenue)
	for _, o := range orders {
		if o.Status != models.OrderCompleted {
			continue
		}
		for _, line := range o.Items {
			if line.Kind != models.ItemTicket {
				continue
			}
			entry, ok := byPark[line.Ref]
			if !ok {
				entry = &ParkRevenue{ParkID: line.Ref, Name: line.Name}
				byPark[line.Ref] = entry
			}
			entry.Tickets += line.Quantity
			entry.Revenue += line.Subtotal()
		}
	}

	result := make([]ParkRevenue, 0, len(byPark))
	for _, entry := range byPark {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ParkID < result[j].ParkID })
	return result, nil
}

// RevenueInRange sums completed order revenue for orders created in
// [from, to]. Dates use the visit date format.
func (s *ReportService) RevenueInRange(ctx context.Context, from, to string) (int, int, error) {
	start, err := time.Parse(models.VisitDateLayout, from)
	if err != nil {
		return 0, 0, errors.New("invalid start date: use YYYY-MM-DD")
	}
	end, err := time.Parse(models.VisitDateLayout, to)
	if err != nil {
		return 0, 0, errors.New("invalid end date: use YYYY-MM-DD")
	}
	end = end.Add(24 * time.Hour)

	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return 0, 0, err
	}

	revenue, count := 0, 0
	for _, o := range orders {
		if o.Status != models.OrderCompleted {
			continue
		}
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		revenue += o.TotalAmount
		count++
	}
	return revenue, count, nil
}

// ByPaymentStatus breaks the order book down by status.
func (s *ReportService) ByPaymentStatus(ctx context.Context) ([]StatusBreakdown, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[models.OrderStatus]*StatusBreakdown)
	for _, o := range orders {
		entry, ok := byStatus[o.Status]
		if !ok {
			entry = &StatusBreakdown{Status: o.Status}
			byStatus[o.Status] = entry
		}
		entry.Orders++
		entry.Value += o.TotalAmount
	}

	result := make([]StatusBreakdown, 0, len(byStatus))
	for _, entry := range byStatus {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Status < result[j].Status })
	return result, nil
}

// MerchandiseSales aggregates merchandise line sales per SKU.
func (s *ReportService) MerchandiseSales(ctx context.Context) ([]MerchSales, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	bySKU := make(map[string]*MerchSales)
	for _, o := range orders {
		if o.Status != models.OrderCompleted {
			continue
		}
		for _, line := range o.Items {
			if line.Kind != models.ItemMerchandise {
				continue
			}
			entry, ok := bySKU[line.Ref]
			if !ok {
				entry = &MerchSales{SKU: line.Ref, Name: line.Name}
				bySKU[line.Ref] = entry
			}
			entry.Units += line.Quantity
			entry.Revenue += line.Subtotal()
		}
	}

	result := make([]MerchSales, 0, len(bySKU))
	for _, entry := range bySKU {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SKU < result[j].SKU })
	return result, nil
}

// RevenueByRegion attributes completed order revenue to the buyer's
// region. Customers who have not opted into marketing are bucketed
// UNKNOWN along with those who never set a region.
func (s *ReportService) RevenueByRegion(ctx context.Context) ([]BucketRevenue, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byRegion := make(map[string]int)
	cache := make(map[string]*models.User)
	for _, o := range orders {
		if o.Status != models.OrderCompleted {
			continue
		}
		byRegion[s.bucketFor(ctx, cache, o.UserID, func(u *models.User) string { return u.Region })] += o.TotalAmount
	}

	return sortedRevenueBuckets(byRegion), nil
}

// VisitorsByAgeGroup counts tickets sold per buyer age group, with the
// same marketing opt-in gate as RevenueByRegion.
func (s *ReportService) VisitorsByAgeGroup(ctx context.Context) ([]BucketCount, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byAge := make(map[string]int)
	cache := make(map[string]*models.User)
	for _, o := range orders {
		if o.Status != models.OrderCompleted {
			continue
		}
		tickets := 0
		for _, line := range o.Items {
			if line.Kind == models.ItemTicket {
				tickets += line.Quantity
			}
		}
		if tickets == 0 {
			continue
		}
		byAge[s.bucketFor(ctx, cache, o.UserID, func(u *models.User) string { return u.AgeGroup })] += tickets
	}

	result := make([]BucketCount, 0, len(byAge))
	for bucket, count := range byAge {
		result = append(result, BucketCount{Bucket: bucket, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Bucket < result[j].Bucket })
	return result, nil
}

// bucketFor resolves a user's demographic bucket. Lookup failures, users
// who opted out of marketing and empty fields all map to UNKNOWN.
func (s *ReportService) bucketFor(ctx context.Context, cache map[string]*models.User, userID string, field func(*models.User) string) string {
	user, ok := cache[userID]
	if !ok {
		var err error
		user, err = s.users.GetByID(ctx, userID)
		if err != nil {
			s.log.WithError(err).WithField("user_id", userID).Debug("demographic lookup failed")
			user = nil
		}
		cache[userID] = user
	}

	if user == nil || !user.MarketingOptIn {
		return UnknownBucket
	}
	if v := field(user); v != "" {
		return v
	}
	return UnknownBucket
}

func sortedRevenueBuckets(m map[string]int) []BucketRevenue {
	result := make([]BucketRevenue, 0, len(m))
	for bucket, revenue := range m {
		result = append(result, BucketRevenue{Bucket: bucket, Revenue: revenue})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Bucket < result[j].Bucket })
	return result
}

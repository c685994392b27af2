package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"park-system/internal/models"
)

func newReportFixture() (*ReportService, *mockOrderRepository, *mockUserRepository) {
	orders := newMockOrderRepository()
	users := newMockUserRepository()

	users.users["cust01"] = &models.User{
		UserID: "cust01", Name: "John Doe", Email: "john", PasswordHash: "x",
		Role: models.RoleCustomer, AgeGroup: "25-34", Region: "Sarawak", MarketingOptIn: true,
	}
	users.users["cust02"] = &models.User{
		UserID: "cust02", Name: "Jane Smith", Email: "jane", PasswordHash: "x",
		Role: models.RoleCustomer, AgeGroup: "45-54", Region: "Miri", MarketingOptIn: false,
	}

	mkDate := func(value string) time.Time {
		d, _ := time.Parse(models.VisitDateLayout, value)
		return d.Add(12 * time.Hour)
	}

	orders.orders = []*models.Order{
		{
			OrderNumber: "ORD-20251101-000001", UserID: "cust01",
			Items: []models.OrderLine{
				{Kind: models.ItemTicket, Ref: "P01", Name: "Bako National Park", Quantity: 2, UnitPrice: 1000},
				{Kind: models.ItemMerchandise, Ref: "SKU001", Name: "Park T-Shirt", Quantity: 1, UnitPrice: 500},
			},
			TotalAmount: 2500, Status: models.OrderCompleted, CreatedAt: mkDate("2025-11-01"),
		},
		{
			OrderNumber: "ORD-20251105-000002", UserID: "cust02",
			Items: []models.OrderLine{
				{Kind: models.ItemTicket, Ref: "P02", Name: "Niah National Park", Quantity: 1, UnitPrice: 2000},
			},
			TotalAmount: 2000, Status: models.OrderCompleted, CreatedAt: mkDate("2025-11-05"),
		},
		{
			OrderNumber: "ORD-20251110-000003", UserID: "cust01",
			Items: []models.OrderLine{
				{Kind: models.ItemMerchandise, Ref: "SKU001", Name: "Park T-Shirt", Quantity: 2, UnitPrice: 500},
			},
			TotalAmount: 1000, Status: models.OrderRefunded, CreatedAt: mkDate("2025-11-10"),
		},
	}

	return NewReportService(orders, users, testLogger()), orders, users
}

func TestGetSummary(t *testing.T) {
	svc, _, _ := newReportFixture()

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4500, summary.TotalRevenue)
	assert.Equal(t, 3, summary.OrderCount)
	assert.Equal(t, 1, summary.Refunded)
}

func TestTicketRevenueByPark(t *testing.T) {
	svc, _, _ := newReportFixture()

	result, err := svc.TicketRevenueByPark(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "P01", result[0].ParkID)
	assert.Equal(t, 2, result[0].Tickets)
	assert.Equal(t, 2000, result[0].Revenue)
	assert.Equal(t, "P02", result[1].ParkID)
	assert.Equal(t, 2000, result[1].Revenue)
}

func TestRevenueInRange(t *testing.T) {
	svc, _, _ := newReportFixture()
	ctx := context.Background()

	revenue, count, err := svc.RevenueInRange(ctx, "2025-11-01", "2025-11-03")
	require.NoError(t, err)
	assert.Equal(t, 2500, revenue)
	assert.Equal(t, 1, count)

	revenue, count, err = svc.RevenueInRange(ctx, "2025-11-01", "2025-11-30")
	require.NoError(t, err)
	assert.Equal(t, 4500, revenue)
	assert.Equal(t, 2, count)

	_, _, err = svc.RevenueInRange(ctx, "bad", "2025-11-30")
	assert.Error(t, err)
}

func TestByPaymentStatus(t *testing.T) {
	svc, _, _ := newReportFixture()

	result, err := svc.ByPaymentStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	byStatus := make(map[models.OrderStatus]StatusBreakdown)
	for _, entry := range result {
		byStatus[entry.Status] = entry
	}
	assert.Equal(t, 2, byStatus[models.OrderCompleted].Orders)
	assert.Equal(t, 4500, byStatus[models.OrderCompleted].Value)
	assert.Equal(t, 1, byStatus[models.OrderRefunded].Orders)
}

func TestMerchandiseSales(t *testing.T) {
	svc, _, _ := newReportFixture()

	result, err := svc.MerchandiseSales(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)

	// Refunded order's merch line is excluded
	assert.Equal(t, "SKU001", result[0].SKU)
	assert.Equal(t, 1, result[0].Units)
	assert.Equal(t, 500, result[0].Revenue)
}

func TestRevenueByRegionHonorsOptIn(t *testing.T) {
	svc, _, _ := newReportFixture()

	result, err := svc.RevenueByRegion(context.Background())
	require.NoError(t, err)

	byBucket := make(map[string]int)
	for _, entry := range result {
		byBucket[entry.Bucket] = entry.Revenue
	}

	// cust01 opted in, cust02 did not
	assert.Equal(t, 2500, byBucket["Sarawak"])
	assert.Equal(t, 2000, byBucket[UnknownBucket])
	assert.NotContains(t, byBucket, "Miri")
}

func TestVisitorsByAgeGroupHonorsOptIn(t *testing.T) {
	svc, _, _ := newReportFixture()

	result, err := svc.VisitorsByAgeGroup(context.Background())
	require.NoError(t, err)

	byBucket := make(map[string]int)
	for _, entry := range result {
		byBucket[entry.Bucket] = entry.Count
	}

	assert.Equal(t, 2, byBucket["25-34"])
	assert.Equal(t, 1, byBucket[UnknownBucket])
	assert.NotContains(t, byBucket, "45-54")
}

package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"park-system/internal/models"
	"park-system/internal/utils"
)

// SeedService loads the demo dataset into an empty database.
type SeedService struct {
	users UserRepository
	parks ParkRepository
	merch MerchandiseRepository
	log   *logrus.Logger
}

// NewSeedService creates a new seed service
func NewSeedService(users UserRepository, parks ParkRepository, merch MerchandiseRepository, log *logrus.Logger) *SeedService {
	return &SeedService{users: users, parks: parks, merch: merch, log: log}
}

// SeedIfEmpty loads the demo data only when no users exist yet. Returns
// true when seeding ran.
func (s *SeedService) SeedIfEmpty(ctx context.Context) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := s.Seed(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Seed inserts the demo users, parks and merchandise. Passwords are
// hashed at seed time; emails are bare demo names, not real addresses.
func (s *SeedService) Seed(ctx context.Context) error {
	s.log.Info("seeding initial data")

	seedUsers := []struct {
		userID, name, email, password string
		role                          models.Role
	}{
		{"admin01", "Super Admin", "admin", "admin123", models.RoleAdmin},
		{"cust01", "John Doe", "john", "123", models.RoleCustomer},
		{"cust02", "Jane Smith", "jane", "123", models.RoleCustomer},
	}
	for _, u := range seedUsers {
		hash, err := utils.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		user := &models.User{
			UserID:       u.userID,
			Name:         u.name,
			Email:        u.email,
			PasswordHash: hash,
			Role:         u.role,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.userID, err)
		}
	}

	parks := []*models.Park{
		{
			ParkID:      "P01",
			Name:        "Bako National Park",
			Location:    "Sarawak",
			Description: "Oldest national park.",
			MaxCapacity: 20,
			Schedules: []models.Schedule{
				{VisitDate: "2025-12-01"},
				{VisitDate: "2025-12-02"},
			},
		},
		{
			ParkID:      "P02",
			Name:        "Niah National Park",
			Location:    "Miri",
			Description: "Famous for caves.",
			MaxCapacity: 50,
			Schedules: []models.Schedule{
				{VisitDate: "2025-12-01"},
			},
		},
	}
	for _, p := range parks {
		if err := s.parks.Save(ctx, p); err != nil {
			return fmt.Errorf("failed to seed park %s: %w", p.ParkID, err)
		}
	}

	merch := []*models.Merchandise{
		{SKU: "SKU001", Name: "Park T-Shirt", Price: 2500, StockQuantity: 100},
		{SKU: "SKU002", Name: "Souvenir Mug", Price: 1500, StockQuantity: 50},
	}
	for _, m := range merch {
		if err := s.merch.Save(ctx, m); err != nil {
			return fmt.Errorf("failed to seed merchandise %s: %w", m.SKU, err)
		}
	}

	s.log.WithFields(logrus.Fields{
		"users": len(seedUsers),
		"parks": len(parks),
		"merch": len(merch),
	}).Info("seeding complete")
	return nil
}

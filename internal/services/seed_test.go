package services

import (
	"context"
	"testing"

	"park-system/internal/models"
	"park-system/internal/utils"
)

func TestSeedIfEmpty(t *testing.T) {
	users := newMockUserRepository()
	parks := newMockParkRepository()
	merch := newMockMerchandiseRepository()
	svc := NewSeedService(users, parks, merch, testLogger())
	ctx := context.Background()

	seeded, err := svc.SeedIfEmpty(ctx)
	if err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}
	if !seeded {
		t.Fatal("SeedIfEmpty() = false on empty database")
	}

	if len(users.users) != 3 {
		t.Errorf("seeded %d users, want 3", len(users.users))
	}
	admin := users.users["admin01"]
	if admin == nil || admin.Role != models.RoleAdmin {
		t.Fatal("admin01 missing or not an admin")
	}
	ok, err := utils.VerifyPassword("admin123", admin.PasswordHash)
	if err != nil || !ok {
		t.Errorf("admin password not verifiable: ok=%v err=%v", ok, err)
	}

	if len(parks.parks) != 2 {
		t.Errorf("seeded %d parks, want 2", len(parks.parks))
	}
	if parks.parks["P01"].MaxCapacity != 20 {
		t.Errorf("P01 capacity = %d, want 20", parks.parks["P01"].MaxCapacity)
	}
	if merch.items["SKU001"].Price != 2500 {
		t.Errorf("SKU001 price = %d cents, want 2500", merch.items["SKU001"].Price)
	}

	// Second run is a no-op
	seeded, err = svc.SeedIfEmpty(ctx)
	if err != nil {
		t.Fatalf("second SeedIfEmpty() error = %v", err)
	}
	if seeded {
		t.Error("SeedIfEmpty() = true on populated database")
	}
}

package models

import "testing"

func price(cents int) *int { return &cents }

func TestPark_Validate(t *testing.T) {
	tests := []struct {
		name    string
		park    Park
		wantErr bool
	}{
		{
			name: "valid park",
			park: Park{ParkID: "P01", Name: "Bako National Park", Location: "Sarawak", MaxCapacity: 20, TicketPrice: price(1250)},
		},
		{
			name:    "missing name",
			park:    Park{ParkID: "P01", Location: "Sarawak", MaxCapacity: 20},
			wantErr: true,
		},
		{
			name:    "missing location",
			park:    Park{ParkID: "P01", Name: "Bako", MaxCapacity: 20},
			wantErr: true,
		},
		{
			name:    "zero capacity",
			park:    Park{ParkID: "P01", Name: "Bako", Location: "Sarawak", MaxCapacity: 0},
			wantErr: true,
		},
		{
			name:    "negative ticket price",
			park:    Park{ParkID: "P01", Name: "Bako", Location: "Sarawak", MaxCapacity: 20, TicketPrice: price(-1)},
			wantErr: true,
		},
		{
			name: "duplicate schedules",
			park: Park{
				ParkID: "P01", Name: "Bako", Location: "Sarawak", MaxCapacity: 20,
				Schedules: []Schedule{{VisitDate: "2025-12-01"}, {VisitDate: "2025-12-01"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.park.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Park.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPark_AddSchedule(t *testing.T) {
	park := Park{ParkID: "P01", Name: "Bako", Location: "Sarawak", MaxCapacity: 20}

	if err := park.AddSchedule("2025-12-01"); err != nil {
		t.Fatalf("AddSchedule() error = %v", err)
	}
	if err := park.AddSchedule("2025-12-01"); err != ErrDuplicateSchedule {
		t.Errorf("duplicate AddSchedule() error = %v, want ErrDuplicateSchedule", err)
	}
	if err := park.AddSchedule("not-a-date"); err == nil {
		t.Error("AddSchedule() accepted a malformed date")
	}
}

func TestPark_RemoveSchedule(t *testing.T) {
	park := Park{
		ParkID: "P01", Name: "Bako", Location: "Sarawak", MaxCapacity: 20,
		Schedules: []Schedule{{VisitDate: "2025-12-01"}, {VisitDate: "2025-12-02"}},
	}

	if err := park.RemoveSchedule("2025-12-01"); err != nil {
		t.Fatalf("RemoveSchedule() error = %v", err)
	}
	if len(park.Schedules) != 1 || park.Schedules[0].VisitDate != "2025-12-02" {
		t.Errorf("unexpected schedules after remove: %+v", park.Schedules)
	}
	if err := park.RemoveSchedule("2025-12-01"); err != ErrScheduleNotFound {
		t.Errorf("RemoveSchedule() error = %v, want ErrScheduleNotFound", err)
	}
}

func TestPark_UpdateMaxCapacity(t *testing.T) {
	park := Park{
		ParkID: "P01", Name: "Bako", Location: "Sarawak", MaxCapacity: 20,
		Schedules: []Schedule{{VisitDate: "2025-12-01", CurrentOccupancy: 5}},
	}

	if err := park.UpdateMaxCapacity(4); err == nil {
		t.Error("UpdateMaxCapacity() accepted capacity below existing occupancy")
	}
	if err := park.UpdateMaxCapacity(0); err == nil {
		t.Error("UpdateMaxCapacity() accepted zero capacity")
	}
	if err := park.UpdateMaxCapacity(50); err != nil {
		t.Errorf("UpdateMaxCapacity() error = %v", err)
	}
	if park.MaxCapacity != 50 {
		t.Errorf("MaxCapacity = %d, want 50", park.MaxCapacity)
	}
}

func TestPark_Remaining(t *testing.T) {
	park := Park{MaxCapacity: 20}

	if got := park.Remaining(Schedule{CurrentOccupancy: 5}); got != 15 {
		t.Errorf("Remaining() = %d, want 15", got)
	}
	if got := park.Remaining(Schedule{CurrentOccupancy: 25}); got != 0 {
		t.Errorf("Remaining() = %d, want 0", got)
	}
}

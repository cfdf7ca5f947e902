package fixtures

import (
	"strings"
	"testing"

	"ride-hailing/internal/models"
)

func TestNewDirectory(t *testing.T) {
	d := NewDirectory()

	all := d.All()
	if len(all) != 10 {
		t.Fatalf("len(All()) = %d, want 10", len(all))
	}

	ids := make(map[string]bool)
	for _, drv := range all {
		if drv.ID == "" || ids[drv.ID] {
			t.Errorf("driver %q has empty or duplicate id %q", drv.Name, drv.ID)
		}
		ids[drv.ID] = true
		if !drv.IsAvailable {
			t.Errorf("driver %q is not available", drv.Name)
		}
		if !strings.HasPrefix(drv.ProfileImage, "https://randomuser.me/api/portraits/") {
			t.Errorf("driver %q image = %q", drv.Name, drv.ProfileImage)
		}
	}

	wantTypes := []string{VehicleBike, VehicleAuto, VehicleMini, VehiclePrimeSedan, VehiclePrimeSUV}
	got := d.VehicleTypes()
	if strings.Join(got, ",") != strings.Join(wantTypes, ",") {
		t.Errorf("VehicleTypes() = %v, want %v", got, wantTypes)
	}
	for _, vt := range wantTypes {
		if n := len(d.FilterByVehicleType(vt)); n != 2 {
			t.Errorf("FilterByVehicleType(%q) = %d drivers, want 2", vt, n)
		}
	}
}

func TestDirectoriesHaveFreshIDs(t *testing.T) {
	a, b := NewDirectory(), NewDirectory()
	if a.All()[0].ID == b.All()[0].ID {
		t.Error("two directories share fixture ids")
	}
}

func TestFindByVehicleType(t *testing.T) {
	d := NewDirectory()

	tests := []struct {
		vehicleType string
		wantName    string
		wantOK      bool
	}{
		{VehicleBike, "Rajesh Kumar", true},
		{VehicleAuto, "Mohammed Ismail", true},
		{VehiclePrimeSUV, "Arun Nair", true},
		{"Spaceship", "", false},
		{"bike", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.vehicleType, func(t *testing.T) {
			drv, ok := d.FindByVehicleType(tt.vehicleType)
			if ok != tt.wantOK || drv.Name != tt.wantName {
				t.Errorf("FindByVehicleType(%q) = (%q, %v), want (%q, %v)", tt.vehicleType, drv.Name, ok, tt.wantName, tt.wantOK)
			}
		})
	}
}

func TestFindByID(t *testing.T) {
	d := NewDirectoryFrom([]models.FixtureDriver{
		{ID: "d1", Name: "One", VehicleType: "Auto"},
		{ID: "d2", Name: "Two", VehicleType: "Auto"},
	})
	if drv, ok := d.FindByID("d2"); !ok || drv.Name != "Two" {
		t.Errorf("FindByID(d2) = (%+v, %v)", drv, ok)
	}
	if _, ok := d.FindByID("missing"); ok {
		t.Error("FindByID(missing) found a driver")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	d := NewDirectory()
	all := d.All()
	all[0].Name = "mutated"
	if d.All()[0].Name == "mutated" {
		t.Error("All() exposed internal slice")
	}
}

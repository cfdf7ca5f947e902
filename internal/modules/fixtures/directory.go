package fixtures

import (
	"fmt"

	"ride-hailing/internal/models"

	"github.com/google/uuid"
)

// Vehicle types offered by the sample fleet.
const (
	VehicleBike       = "Bike"
	VehicleAuto       = "Auto"
	VehicleMini       = "Mini"
	VehiclePrimeSedan = "Prime Sedan"
	VehiclePrimeSUV   = "Prime SUV"
)

// Every sample driver waits at the same point in Bengaluru.
var defaultLocation = models.LatLng{Lat: 12.9716, Lng: 77.5946}

type seed struct {
	name, vehicle, vehicleType string
	rating                     float64
	portrait                   string
}

var seeds = []seed{
	{"Rajesh Kumar", "Honda Activa - KA 01 AB 1234", VehicleBike, 4.8, "men/32"},
	{"Amit Singh", "TVS Jupiter - KA 02 CD 5678", VehicleBike, 4.7, "men/45"},
	{"Mohammed Ismail", "Bajaj Auto - KA 05 MN 9012", VehicleAuto, 4.6, "men/22"},
	{"Venkatesh R", "Piaggio Auto - KA 03 XY 3456", VehicleAuto, 4.9, "men/56"},
	{"Suresh Patel", "Maruti Swift - KA 01 PQ 7890", VehicleMini, 4.8, "men/62"},
	{"Priya Sharma", "Hyundai i10 - KA 04 EF 2345", VehicleMini, 4.9, "women/42"},
	{"Rahul Verma", "Honda City - KA 01 UV 6789", VehiclePrimeSedan, 4.9, "men/75"},
	{"Karthik Menon", "Hyundai Verna - KA 02 GH 9012", VehiclePrimeSedan, 4.8, "men/82"},
	{"Arun Nair", "Toyota Innova - KA 01 WX 3456", VehiclePrimeSUV, 4.9, "men/92"},
	{"Deepak Reddy", "Mahindra XUV700 - KA 05 JK 7890", VehiclePrimeSUV, 4.7, "men/95"},
}

// Directory is a read-only list of sample drivers used to simulate matching.
// Ids are generated per construction, so they do not survive a restart.
type Directory struct {
	drivers []models.FixtureDriver
	types   []string
}

// NewDirectory builds the ten-driver sample fleet.
func NewDirectory() *Directory {
	drivers := make([]models.FixtureDriver, 0, len(seeds))
	for _, s := range seeds {
		drivers = append(drivers, models.FixtureDriver{
			ID:             uuid.NewString(),
			Name:           s.name,
			VehicleDetails: s.vehicle,
			VehicleType:    s.vehicleType,
			Rating:         s.rating,
			IsAvailable:    true,
			Location:       defaultLocation,
			ProfileImage:   fmt.Sprintf("https://randomuser.me/api/portraits/%s.jpg", s.portrait),
		})
	}
	return NewDirectoryFrom(drivers)
}

// NewDirectoryFrom wraps an arbitrary list; the slice is copied.
func NewDirectoryFrom(drivers []models.FixtureDriver) *Directory {
	d := &Directory{drivers: append([]models.FixtureDriver(nil), drivers...)}
	seen := make(map[string]bool)
	for _, drv := range d.drivers {
		if !seen[drv.VehicleType] {
			seen[drv.VehicleType] = true
			d.types = append(d.types, drv.VehicleType)
		}
	}
	return d
}

// FindByVehicleType returns the first driver of the given type (linear scan, no ranking).
func (d *Directory) FindByVehicleType(vehicleType string) (models.FixtureDriver, bool) {
	for _, drv := range d.drivers {
		if drv.VehicleType == vehicleType {
			return drv, true
		}
	}
	return models.FixtureDriver{}, false
}

func (d *Directory) FilterByVehicleType(vehicleType string) []models.FixtureDriver {
	var out []models.FixtureDriver
	for _, drv := range d.drivers {
		if drv.VehicleType == vehicleType {
			out = append(out, drv)
		}
	}
	return out
}

func (d *Directory) FindByID(id string) (models.FixtureDriver, bool) {
	for _, drv := range d.drivers {
		if drv.ID == id {
			return drv, true
		}
	}
	return models.FixtureDriver{}, false
}

// All returns a copy of every driver.
func (d *Directory) All() []models.FixtureDriver {
	return append([]models.FixtureDriver(nil), d.drivers...)
}

// VehicleTypes lists the distinct types in fleet order.
func (d *Directory) VehicleTypes() []string {
	return append([]string(nil), d.types...)
}

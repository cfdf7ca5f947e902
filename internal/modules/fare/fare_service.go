package fare

import (
	"math"
	"time"

	"ride-hailing/internal/models"
)

const (
	peakMultiplier  = 1.2
	nightMultiplier = 1.25
	gstRate         = 0.05
)

// Tariff is the price sheet of one vehicle type.
type Tariff struct {
	VehicleType  string
	Capacity     string
	BasePrice    float64
	PerKm        float64
	PerMin       float64
	Multiplier   float64
	ServiceFee   float64
	InsuranceFee float64
}

// DefaultTariffs mirrors the ride options shown in the rider app.
var DefaultTariffs = []Tariff{
	{"Bike", "1 person", 20, 10, 1, 1.0, 5, 2},
	{"Auto", "3 people", 30, 15, 1.5, 1.2, 8, 3},
	{"Mini", "4 people", 45, 18, 2, 1.5, 10, 5},
	{"Prime Sedan", "4 people", 55, 22, 2.5, 1.75, 15, 8},
	{"Prime SUV", "6 people", 65, 28, 3, 2.0, 20, 10},
}

// ServiceInterface quotes every vehicle type for a route.
type ServiceInterface interface {
	Estimate(distanceMeters, durationSeconds float64) []models.FareQuote
}

type Service struct {
	tariffs []Tariff
	now     func() time.Time
}

func NewService(tariffs []Tariff) ServiceInterface {
	return &Service{tariffs: tariffs, now: time.Now}
}

func (s *Service) Estimate(distanceMeters, durationSeconds float64) []models.FareQuote {
	hour := s.now().Hour()
	surcharge := surchargeAt(hour)

	quotes := make([]models.FareQuote, 0, len(s.tariffs))
	for _, t := range s.tariffs {
		quotes = append(quotes, models.FareQuote{
			VehicleType: t.VehicleType,
			Capacity:    t.Capacity,
			BasePrice:   t.BasePrice,
			PerKm:       t.PerKm,
			Fare:        t.Price(distanceMeters, durationSeconds, hour),
			Surcharge:   surcharge,
		})
	}
	return quotes
}

// Price is (base + km*perKm + min*perMin) * multiplier * time-of-day surcharge,
// plus the fixed fees, plus GST, rounded to the nearest rupee.
func (t Tariff) Price(distanceMeters, durationSeconds float64, hour int) float64 {
	km := distanceMeters / 1000
	minutes := durationSeconds / 60

	subtotal := (t.BasePrice + km*t.PerKm + minutes*t.PerMin) * t.Multiplier * surchargeAt(hour)
	withFees := subtotal + t.ServiceFee + t.InsuranceFee
	return math.Round(withFees * (1 + gstRate))
}

// surchargeAt applies the peak (08-10, 17-19) and night (23-05) multipliers.
func surchargeAt(hour int) float64 {
	m := 1.0
	if (hour >= 8 && hour <= 10) || (hour >= 17 && hour <= 19) {
		m *= peakMultiplier
	}
	if hour >= 23 || hour <= 5 {
		m *= nightMultiplier
	}
	return m
}

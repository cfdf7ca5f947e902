package fare

import (
	"testing"
	"time"
)

func TestTariffPrice(t *testing.T) {
	bike := DefaultTariffs[0]
	suv := DefaultTariffs[4]

	tests := []struct {
		name     string
		tariff   Tariff
		meters   float64
		seconds  float64
		hour     int
		wantFare float64
	}{
		// (20 + 50 + 10) * 1.0 = 80; +7 fees = 87; *1.05 = 91.35
		{"bike off-peak", bike, 5000, 600, 14, 91},
		// 80 * 1.2 = 96; +7 = 103; *1.05 = 108.15
		{"bike peak", bike, 5000, 600, 9, 108},
		// 80 * 1.25 = 100; +7 = 107; *1.05 = 112.35
		{"bike night", bike, 5000, 600, 2, 112},
		// (65 + 280 + 60) * 2.0 = 810; +30 = 840; *1.05 = 882
		{"suv off-peak", suv, 10000, 1200, 12, 882},
		// zero route still pays base and fees: 20 + 7 = 27 * 1.05 = 28.35
		{"bike zero route", bike, 0, 0, 12, 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tariff.Price(tt.meters, tt.seconds, tt.hour); got != tt.wantFare {
				t.Errorf("Price() = %v, want %v", got, tt.wantFare)
			}
		})
	}
}

func TestSurchargeAt(t *testing.T) {
	tests := map[int]float64{
		0: 1.25, 5: 1.25, 6: 1, 8: 1.2, 10: 1.2, 11: 1,
		17: 1.2, 19: 1.2, 20: 1, 22: 1, 23: 1.25,
	}
	for hour, want := range tests {
		if got := surchargeAt(hour); got != want {
			t.Errorf("surchargeAt(%d) = %v, want %v", hour, got, want)
		}
	}
}

func TestEstimateQuotesEveryType(t *testing.T) {
	svc := &Service{
		tariffs: DefaultTariffs,
		now:     func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) },
	}

	quotes := svc.Estimate(5000, 600)
	if len(quotes) != len(DefaultTariffs) {
		t.Fatalf("got %d quotes, want %d", len(quotes), len(DefaultTariffs))
	}
	for i, q := range quotes {
		if q.VehicleType != DefaultTariffs[i].VehicleType {
			t.Errorf("quote %d type = %q", i, q.VehicleType)
		}
		if q.Surcharge != 1.2 {
			t.Errorf("quote %d surcharge = %v, want 1.2", i, q.Surcharge)
		}
		if i > 0 && q.Fare <= quotes[i-1].Fare {
			t.Errorf("%s fare %v not above %s fare %v", q.VehicleType, q.Fare, quotes[i-1].VehicleType, quotes[i-1].Fare)
		}
	}
	if quotes[0].Fare != 108 {
		t.Errorf("bike fare = %v, want 108", quotes[0].Fare)
	}
}

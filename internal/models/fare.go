package models

// FareEstimateRequest is bound from the query string of GET /api/rides/fare-estimate.
type FareEstimateRequest struct {
	Distance float64 `query:"distance" validate:"gte=0"` // metres
	Duration float64 `query:"duration" validate:"gte=0"` // seconds
}

type FareQuote struct {
	VehicleType string  `json:"vehicleType"`
	Capacity    string  `json:"capacity"`
	BasePrice   float64 `json:"basePrice"`
	PerKm       float64 `json:"perKm"`
	Fare        float64 `json:"fare"`
	Surcharge   float64 `json:"surcharge"` // combined peak/night multiplier applied
}

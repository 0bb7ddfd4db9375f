package model

import "math"

const (
	NightlyRateCat  = 25.0
	NightlyRateDog  = 35.0
	GroomingFeeCat  = 15.0
	GroomingFeeDog  = 20.0
	PickupRatePerMi = 1.50
	TaxRate         = 0.0625
)

type Price struct {
	Nights      int     `json:"nights"`
	NightlyRate float64 `json:"nightlyRate"`
	Boarding    float64 `json:"boarding"`
	Grooming    float64 `json:"grooming"`
	Pickup      float64 `json:"pickup"`
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// Quote prices a stay. Dogs pay the dog rates, every other species the cat rates.
// Only the total is rounded, to cents.
func Quote(species string, nights int, grooming bool, pickupMiles float64) Price {
	nightly, groomingFee := NightlyRateCat, GroomingFeeCat
	if species == "dog" {
		nightly, groomingFee = NightlyRateDog, GroomingFeeDog
	}

	if nights < 0 {
		nights = 0
	}

	if pickupMiles < 0 {
		pickupMiles = 0
	}

	price := Price{
		Nights:      nights,
		NightlyRate: nightly,
		Boarding:    nightly * float64(nights),
		Pickup:      pickupMiles * PickupRatePerMi,
	}

	if grooming {
		price.Grooming = groomingFee
	}

	price.Subtotal = price.Boarding + price.Grooming + price.Pickup
	price.Tax = price.Subtotal * TaxRate
	price.Total = roundCents(price.Subtotal * (1 + TaxRate))

	return price
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

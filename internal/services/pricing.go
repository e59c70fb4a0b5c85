package services

import (
	"math"

	"github.com/saeid-a/KickoffCoachWeb/internal/models"
)

const (
	BasePrice           = 40
	ExtraChildSurcharge = 10

	// MaxQuoteChildren bounds the child count accepted by the public quote endpoint.
	MaxQuoteChildren = 50
)

// ComputePrice returns the total for one session: the base price covers the first
// child, the location adds its flat surcharge, and every additional child adds
// ExtraChildSurcharge. A nil location contributes nothing. The result saturates at
// math.MaxInt instead of overflowing.
func ComputePrice(location *models.Location, selectedChildCount int) int {
	locationPrice := 0
	if location != nil {
		locationPrice = location.Price
	}

	extraChildren := selectedChildCount - 1
	if extraChildren < 0 {
		extraChildren = 0
	}

	fixed := BasePrice + locationPrice
	if extraChildren > (math.MaxInt-fixed)/ExtraChildSurcharge {
		return math.MaxInt
	}
	return fixed + extraChildren*ExtraChildSurcharge
}

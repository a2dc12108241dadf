package pricing

import (
	"fmt"
	"math"

	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
)

// All amounts are in pesewas (cents) as int64, so we never do float math
// on money anywhere except the final display formatting.

// PickupFeeCents is the flat surcharge when an agent collects the parcel
// instead of the sender dropping it off.
const PickupFeeCents int64 = 1500 // GH₵15.00

// baseCents maps a size class to its base price.
var baseCents = map[models.ParcelSize]int64{
	models.SizeSmall:  2500,
	models.SizeMedium: 4500,
	models.SizeLarge:  7500,
}

// weightMultipliers scale the base price by declared weight range.
// Keys are the exact strings the size step produces.
var weightMultipliers = map[string]float64{
	"0-1kg":   1.0,
	"1-5kg":   1.2,
	"5-10kg":  1.5,
	"10-25kg": 2.0,
}

// BasePriceFor looks up the base price for a (size, weightRange) pair.
// Unknown sizes fall back to small and unknown weight ranges to 1.0,
// matching how the client behaved before: a bad key never blocks the flow.
func BasePriceFor(size models.ParcelSize, weightRange string) int64 {
	base, ok := baseCents[size]
	if !ok {
		base = baseCents[models.SizeSmall]
	}
	mult, ok := weightMultipliers[weightRange]
	if !ok {
		mult = 1.0
	}
	return int64(math.Round(float64(base) * mult))
}

// PickupFeeFor returns the surcharge for the given handover method.
func PickupFeeFor(method models.HandoverMethod) int64 {
	if method == models.HandoverPickup {
		return PickupFeeCents
	}
	return 0
}

// CalculateTotalPrice is the one place total price is computed.
// Pure function: same inputs always give the same output.
func CalculateTotalPrice(baseCents, pickupFeeCents int64) int64 {
	return baseCents + pickupFeeCents
}

// FormatPrice renders an amount for display, e.g. "GH₵30.00".
func FormatPrice(cents int64) string {
	return fmt.Sprintf("GH₵%.2f", float64(cents)/100)
}

// WeightRanges returns the known weight range keys, handy for the UI
// and for table-driven tests.
func WeightRanges() []string {
	return []string{"0-1kg", "1-5kg", "5-10kg", "10-25kg"}
}

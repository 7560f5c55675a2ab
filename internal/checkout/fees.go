package checkout

import "strings"

// DeliveryMethod selects between rider delivery and pickup at the Surulere
// kitchen.
type DeliveryMethod string

const (
	MethodDelivery DeliveryMethod = "delivery"
	MethodPickup   DeliveryMethod = "pickup"
)

// PaymentMethod is collected for the rider; nothing is charged in-app.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

// Flat delivery fees per Lagos area, whole naira. Unrecognized areas fall
// back to DefaultDeliveryFee rather than failing the checkout.
var areaFees = map[string]int64{
	"surulere":        1_000,
	"yaba":            1_500,
	"ikeja":           2_000,
	"ikoyi":           2_000,
	"lekki":           2_500,
	"victoria island": 2_500,
	"ajah":            3_000,
}

// DefaultDeliveryFee applies when the area is blank or not in the table.
const DefaultDeliveryFee int64 = 2_000

// DeliveryFee looks up the fee for an area, case-insensitive and trimmed.
// Pickup is always free.
func DeliveryFee(area string, method DeliveryMethod) int64 {
	if method == MethodPickup {
		return 0
	}
	if fee, ok := areaFees[strings.ToLower(strings.TrimSpace(area))]; ok {
		return fee
	}
	return DefaultDeliveryFee
}

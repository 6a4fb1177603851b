package pricing

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Inputs are the four editable cost fields of the product admin form.
type Inputs struct {
	BuyPrice           decimal.Decimal
	DeliveryFee        decimal.Decimal
	GSTPercent         decimal.Decimal
	RazorpayCutPercent decimal.Decimal
}

// Quote holds the two derived fields. Neither is stored independently; both
// are recomputed from the inputs whenever any of them changes.
type Quote struct {
	TotalCostBeforeMarkup  decimal.Decimal
	CalculatedSellingPrice decimal.Decimal
}

// InputsFromFloats converts raw form numbers, rejecting negatives. The form
// itself does not validate; the API boundary does.
func InputsFromFloats(buyPrice, deliveryFee, gstPercent, razorpayCutPercent float64) (Inputs, error) {
	in := Inputs{
		BuyPrice:           decimal.NewFromFloat(buyPrice),
		DeliveryFee:        decimal.NewFromFloat(deliveryFee),
		GSTPercent:         decimal.NewFromFloat(gstPercent),
		RazorpayCutPercent: decimal.NewFromFloat(razorpayCutPercent),
	}
	for _, v := range []decimal.Decimal{in.BuyPrice, in.DeliveryFee, in.GSTPercent, in.RazorpayCutPercent} {
		if v.IsNegative() {
			return Inputs{}, pkgerrors.New(pkgerrors.CodeValidation, "cost inputs must be non-negative")
		}
	}
	return in, nil
}

// Derive computes
//
//	totalCostBeforeMarkup  = buyPrice × (1 + gstPercent/100 + razorpayCutPercent/100) + deliveryFee
//	calculatedSellingPrice = round(totalCostBeforeMarkup × 2)
//
// The selling price rounds to whole rupees, half away from zero.
func Derive(in Inputs) Quote {
	multiplier := decimal.NewFromInt(1).
		Add(in.GSTPercent.Div(hundred)).
		Add(in.RazorpayCutPercent.Div(hundred))
	total := in.BuyPrice.Mul(multiplier).Add(in.DeliveryFee)
	return Quote{
		TotalCostBeforeMarkup:  total,
		CalculatedSellingPrice: total.Mul(two).Round(0),
	}
}

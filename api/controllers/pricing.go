package controllers

import (
	"net/http"

	"github.com/aurelia-jewels/storefront-gateway/api/responses"
	"github.com/aurelia-jewels/storefront-gateway/api/validators"
	"github.com/aurelia-jewels/storefront-gateway/internal/pricing"
	"github.com/aurelia-jewels/storefront-gateway/pkg/logger"
)

type pricingQuotePayload struct {
	BuyPrice           float64 `json:"buy_price" validate:"gte=0"`
	GSTPercent         float64 `json:"gst_percent" validate:"gte=0"`
	RazorpayCutPercent float64 `json:"razorpay_cut_percent" validate:"gte=0"`
	DeliveryFee        float64 `json:"delivery_fee" validate:"gte=0"`
}

type pricingQuoteResponse struct {
	TotalCostBeforeMarkup  float64 `json:"total_cost_before_markup"`
	CalculatedSellingPrice float64 `json:"calculated_selling_price"`
}

// PricingQuote previews the derived pricing for a cost block without saving
// anything, so the admin form can show live figures while editing.
func PricingQuote(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if session := requireSession(w, r, logg); session == nil {
			return
		}

		var payload pricingQuotePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		inputs, err := pricing.InputsFromFloats(payload.BuyPrice, payload.DeliveryFee, payload.GSTPercent, payload.RazorpayCutPercent)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		quote := pricing.Derive(inputs)

		responses.WriteSuccess(w, pricingQuoteResponse{
			TotalCostBeforeMarkup:  quote.TotalCostBeforeMarkup.InexactFloat64(),
			CalculatedSellingPrice: quote.CalculatedSellingPrice.InexactFloat64(),
		})
	}
}

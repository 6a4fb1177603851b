package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
)

func TestDeriveWorkedExample(t *testing.T) {
	in, err := InputsFromFloats(1000, 50, 3, 2)
	require.NoError(t, err)

	quote := Derive(in)

	assert.True(t, quote.TotalCostBeforeMarkup.Equal(decimal.NewFromInt(1100)),
		"total = %s", quote.TotalCostBeforeMarkup)
	assert.True(t, quote.CalculatedSellingPrice.Equal(decimal.NewFromInt(2200)),
		"selling = %s", quote.CalculatedSellingPrice)
}

func TestDeriveZeroInputs(t *testing.T) {
	in, err := InputsFromFloats(0, 0, 0, 0)
	require.NoError(t, err)

	quote := Derive(in)
	assert.True(t, quote.TotalCostBeforeMarkup.IsZero())
	assert.True(t, quote.CalculatedSellingPrice.IsZero())
}

func TestDeriveRoundsSellingPriceOnly(t *testing.T) {
	// 100 × 1.05 + 0.25 = 105.25; ×2 = 210.50 rounds half-up to 211.
	in, err := InputsFromFloats(100, 0.25, 3, 2)
	require.NoError(t, err)

	quote := Derive(in)
	assert.True(t, quote.TotalCostBeforeMarkup.Equal(decimal.RequireFromString("105.25")),
		"total must keep its fraction, got %s", quote.TotalCostBeforeMarkup)
	assert.True(t, quote.CalculatedSellingPrice.Equal(decimal.NewFromInt(211)),
		"selling = %s", quote.CalculatedSellingPrice)
}

func TestDeriveDeliveryFeeOutsidePercentages(t *testing.T) {
	withFee, err := InputsFromFloats(200, 80, 18, 2)
	require.NoError(t, err)
	withoutFee, err := InputsFromFloats(200, 0, 18, 2)
	require.NoError(t, err)

	diff := Derive(withFee).TotalCostBeforeMarkup.Sub(Derive(withoutFee).TotalCostBeforeMarkup)
	assert.True(t, diff.Equal(decimal.NewFromInt(80)), "delivery fee must be additive, diff %s", diff)
}

func TestInputsFromFloatsRejectsNegatives(t *testing.T) {
	cases := [][4]float64{
		{-1, 0, 0, 0},
		{0, -1, 0, 0},
		{0, 0, -1, 0},
		{0, 0, 0, -1},
	}
	for _, c := range cases {
		_, err := InputsFromFloats(c[0], c[1], c[2], c[3])
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}
}

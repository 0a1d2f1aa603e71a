package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFinalAmount(t *testing.T) {
	tests := []struct {
		name        string
		salesPrice  string
		gstIncluded bool
		tdsDeducted bool
		want        string
	}{
		{"no adjustments", "1000", false, false, "1000"},
		{"gst only", "1000", true, false, "1180"},
		{"tds only", "1000", false, true, "980"},
		{"gst then tds", "1000", true, true, "1156.4"},
		{"gst then tds fractional", "2499", true, true, "2889.94"},
		{"zero price", "0", true, true, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := decimal.RequireFromString(tt.salesPrice)
			got := FinalAmount(price, tt.gstIncluded, tt.tdsDeducted)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestFinalAmountAppliesTDSAfterGST(t *testing.T) {
	// 1000 x 1.18 = 1180, then x 0.98 = 1156.4. TDS applies to the
	// GST-adjusted amount, not independently against the sales price.
	got := FinalAmount(decimal.NewFromInt(1000), true, true)
	assert.True(t, got.Equal(decimal.RequireFromString("1156.4")), "got %s", got)
}

func TestFinalAmountIsIdempotent(t *testing.T) {
	price := decimal.RequireFromString("1234.56")
	first := FinalAmount(price, true, true)
	second := FinalAmount(price, true, true)
	assert.True(t, first.Equal(second))
	assert.Equal(t, first.String(), second.String())
}

func TestCommissionAmount(t *testing.T) {
	tests := []struct {
		name       string
		salesPrice string
		rate       string
		want       string
	}{
		{"ten percent", "1000", "10", "100"},
		{"zero rate", "1000", "0", "0"},
		{"fractional rate", "999", "7.5", "74.93"},
		{"full rate", "1000", "100", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CommissionAmount(
				decimal.RequireFromString(tt.salesPrice),
				decimal.RequireFromString(tt.rate),
			)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestCommissionIndependentOfTaxFlags(t *testing.T) {
	// Commission is always computed on the raw sales price; GST/TDS flags
	// change the final amount but never the commission.
	price := decimal.NewFromInt(1000)
	rate := decimal.NewFromInt(10)

	want := decimal.NewFromInt(100)
	assert.True(t, CommissionAmount(price, rate).Equal(want))

	withTax := FinalAmount(price, true, true)
	assert.False(t, withTax.Equal(price))
	assert.True(t, CommissionAmount(price, rate).Equal(want))
}

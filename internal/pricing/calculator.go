// Package pricing holds the invoice math for subscriptions: GST/TDS
// adjustment of the sales price and reseller commission. Everything here is a
// pure function over decimals; callers decide when to persist the results.
package pricing

import "github.com/shopspring/decimal"

// GST is a fixed 18% surcharge, TDS a fixed 2% deduction applied to the
// GST-adjusted amount. The order is load-bearing: TDS always comes after GST.
var (
	gstMultiplier = decimal.NewFromFloat(1.18)
	tdsMultiplier = decimal.NewFromFloat(0.98)
	oneHundred    = decimal.NewFromInt(100)
)

// FinalAmount derives the invoice total from the sales price. GST (x1.18) is
// applied first when included, then TDS (x0.98) on the result when deducted.
// The result is rounded to 2 decimal places, matching the NUMERIC(12,2)
// column it is stored in, so recomputing from the same inputs is stable.
func FinalAmount(salesPrice decimal.Decimal, gstIncluded, tdsDeducted bool) decimal.Decimal {
	amount := salesPrice
	if gstIncluded {
		amount = amount.Mul(gstMultiplier)
	}
	if tdsDeducted {
		amount = amount.Mul(tdsMultiplier)
	}
	return amount.Round(2)
}

// CommissionAmount is the reseller's cut: salesPrice x rate / 100, computed
// on the raw sales price, never on the GST/TDS-adjusted final amount.
func CommissionAmount(salesPrice, commissionRate decimal.Decimal) decimal.Decimal {
	return salesPrice.Mul(commissionRate).Div(oneHundred).Round(2)
}

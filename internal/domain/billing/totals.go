package billing

import "math"

// TaxRate is the flat sales tax applied to every invoice.
const TaxRate = 0.05

// Round2 rounds to cents, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type Totals struct {
	Labor    float64 `json:"labor"`
	Parts    float64 `json:"parts_total"`
	Service  float64 `json:"service_total"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives the invoice totals from the three charge buckets.
// tax = round2(subtotal * 0.05), total = subtotal + tax.
func ComputeTotals(labor, parts, service float64) Totals {
	subtotal := labor + parts + service
	tax := Round2(subtotal * TaxRate)

	return Totals{
		Labor:    labor,
		Parts:    parts,
		Service:  service,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// LineTotal is the price of one line item: quantity × unit price.
func LineTotal(quantity int, unitPrice float64) float64 {
	return float64(quantity) * unitPrice
}

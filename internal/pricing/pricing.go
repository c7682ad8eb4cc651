// Package pricing computes order totals.
package pricing

import (
	"github.com/libaas-tailors/api/internal/model"
	"github.com/shopspring/decimal"
)

// OrderTotal sums (price + stitchedPrice) * quantity over the product
// list. A missing stitched price counts as zero. The result keeps full
// decimal precision; callers round only at the presentation edge.
func OrderTotal(products []model.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		unit := p.Price
		if p.StitchedPrice != nil {
			unit = unit.Add(*p.StitchedPrice)
		}
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return total
}

// Package pricing holds the storefront's money arithmetic. Every function is
// pure; callers are expected to hand in already-validated values.
package pricing

import (
	"go-storefront/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// EffectivePrice applies a percentage discount to a unit price. The discount is
// not bounds-checked here; the upstream boundary clamps it to [0, 100].
func EffectivePrice(price, discount decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(1).Sub(discount.Div(hundred)))
}

func LineTotal(unitPrice decimal.Decimal, count int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(count)))
}

// Subtotal sums the line totals. A line without a reported total counts as
// unit price times count.
func Subtotal(lines []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		if l.TotalPrice.IsZero() {
			sum = sum.Add(LineTotal(l.Price, l.Count))
			continue
		}
		sum = sum.Add(l.TotalPrice)
	}
	return sum
}

// ResolveSubtotal prefers the server aggregate when one was reported and falls
// back to the local sum otherwise. drift reports a disagreement between the two.
func ResolveSubtotal(lines []domain.CartLine, serverTotal decimal.Decimal) (subtotal decimal.Decimal, drift bool) {
	local := Subtotal(lines)
	if !serverTotal.IsPositive() {
		return local, false
	}
	return serverTotal, !serverTotal.Equal(local)
}

func OrderTotal(subtotal, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping)
}

// SavedAmount is display-only and never feeds into totals.
func SavedAmount(originalPrice, finalPrice decimal.Decimal, count int) decimal.Decimal {
	return originalPrice.Sub(finalPrice).Mul(decimal.NewFromInt(int64(count)))
}

// ShippingPolicy waives the flat fee for subtotals strictly above the threshold.
type ShippingPolicy struct {
	FreeThreshold decimal.Decimal
	FlatFee       decimal.Decimal
}

func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{
		FreeThreshold: decimal.NewFromInt(100),
		FlatFee:       decimal.NewFromInt(10),
	}
}

func (p ShippingPolicy) Fee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.FlatFee
}

func (p ShippingPolicy) IsFree(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThan(p.FreeThreshold)
}

// AmountToFreeShipping is how much the subtotal is short of the threshold,
// zero once it is reached.
func (p ShippingPolicy) AmountToFreeShipping(subtotal decimal.Decimal) decimal.Decimal {
	if short := p.FreeThreshold.Sub(subtotal); short.IsPositive() {
		return short
	}
	return decimal.Zero
}

// Quote is the per-product price breakdown shown on a product page.
type Quote struct {
	UnitPrice  decimal.Decimal
	FinalPrice decimal.Decimal
	Count      int
	TotalPrice decimal.Decimal
	Saved      decimal.Decimal
}

func QuoteProduct(p domain.Product, count int) Quote {
	final := p.Price
	if p.HasDiscount() {
		final = EffectivePrice(p.Price, p.Discount)
	}
	return Quote{
		UnitPrice:  p.Price,
		FinalPrice: final,
		Count:      count,
		TotalPrice: LineTotal(final, count),
		Saved:      SavedAmount(p.Price, final, count),
	}
}

package product

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"go-storefront/internal/domain"
)

type SortOrder string

const (
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortRateDesc  SortOrder = "rate-desc"
)

// FilterCriteria narrows a product list. Nil bounds are not applied.
type FilterCriteria struct {
	Query           string
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	MinRate         *decimal.Decimal
	HasDiscountOnly bool
	Sort            SortOrder
}

// Apply runs the filter stages in a fixed order (text, min price, max price,
// min rate, discount) and then the sort. Price bounds compare the base price,
// not the discounted one. The input slice is not modified; an empty result is
// a normal outcome.
func Apply(products []domain.Product, c FilterCriteria) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	query := strings.ToLower(strings.TrimSpace(c.Query))

	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if c.MinPrice != nil && p.Price.LessThan(*c.MinPrice) {
			continue
		}
		if c.MaxPrice != nil && p.Price.GreaterThan(*c.MaxPrice) {
			continue
		}
		if c.MinRate != nil && p.Rate.LessThan(*c.MinRate) {
			continue
		}
		if c.HasDiscountOnly && !p.HasDiscount() {
			continue
		}
		out = append(out, p)
	}

	if cmp := comparator(c.Sort); cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// comparator returns nil for unknown orders, which keeps filter order.
func comparator(s SortOrder) func(a, b domain.Product) int {
	switch s {
	case SortPriceAsc:
		return func(a, b domain.Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceDesc:
		return func(a, b domain.Product) int { return b.Price.Cmp(a.Price) }
	case SortRateDesc:
		return func(a, b domain.Product) int { return b.Rate.Cmp(a.Rate) }
	default:
		return nil
	}
}

// Paginate slices an already filtered list. limit <= 0 returns everything.
// Pages past the end are empty.
func Paginate(products []domain.Product, page, limit int) []domain.Product {
	if limit <= 0 {
		return products
	}
	if page < 1 {
		page = 1
	}

	pages := len(products) / limit
	if len(products)%limit != 0 {
		pages++
	}
	if page-1 >= pages {
		return []domain.Product{}
	}
	start := (page - 1) * limit
	end := start + min(limit, len(products)-start)
	return products[start:end]
}

package product_test

import (
	"math"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-storefront/internal/domain"
	"go-storefront/internal/product"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func item(id int64, name, price, discount, rate string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Discount: decimal.RequireFromString(discount),
		Rate:     decimal.RequireFromString(rate),
	}
}

func ids(ps []domain.Product) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func catalog() []domain.Product {
	return []domain.Product{
		item(1, "iPhone Case", "20", "0", "4"),
		item(2, "Galaxy Phone", "800", "10", "4.5"),
		item(3, "Phone Charger", "35", "5", "3"),
		item(4, "Laptop Stand", "50", "0", "0"),
		item(5, "PHONE Holder", "35", "0", "5"),
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria product.FilterCriteria
		want     []int64
	}{
		{
			name:     "no_criteria_keeps_order",
			criteria: product.FilterCriteria{},
			want:     []int64{1, 2, 3, 4, 5},
		},
		{
			name:     "text_is_case_insensitive_substring",
			criteria: product.FilterCriteria{Query: "  phone "},
			want:     []int64{1, 2, 3, 5},
		},
		{
			name:     "price_bounds_are_inclusive",
			criteria: product.FilterCriteria{MinPrice: dec("35"), MaxPrice: dec("50")},
			want:     []int64{3, 4, 5},
		},
		{
			name:     "price_bound_uses_base_price_not_discounted",
			criteria: product.FilterCriteria{MaxPrice: dec("750")},
			want:     []int64{1, 3, 4, 5},
		},
		{
			name:     "min_rate_treats_missing_as_zero",
			criteria: product.FilterCriteria{MinRate: dec("0")},
			want:     []int64{1, 2, 3, 4, 5},
		},
		{
			name:     "min_rate",
			criteria: product.FilterCriteria{MinRate: dec("4.5")},
			want:     []int64{2, 5},
		},
		{
			name:     "discount_only",
			criteria: product.FilterCriteria{HasDiscountOnly: true},
			want:     []int64{2, 3},
		},
		{
			name:     "price_asc_is_stable",
			criteria: product.FilterCriteria{Sort: product.SortPriceAsc},
			want:     []int64{1, 3, 5, 4, 2},
		},
		{
			name:     "price_desc_is_stable",
			criteria: product.FilterCriteria{Sort: product.SortPriceDesc},
			want:     []int64{2, 4, 3, 5, 1},
		},
		{
			name:     "rate_desc",
			criteria: product.FilterCriteria{Sort: product.SortRateDesc},
			want:     []int64{5, 2, 1, 3, 4},
		},
		{
			name:     "unknown_sort_keeps_filter_order",
			criteria: product.FilterCriteria{Query: "phone", Sort: "name-asc"},
			want:     []int64{1, 2, 3, 5},
		},
		{
			name: "all_stages_combined",
			criteria: product.FilterCriteria{
				Query:    "phone",
				MinPrice: dec("30"),
				MinRate:  dec("3"),
				Sort:     product.SortPriceDesc,
			},
			want: []int64{2, 3, 5},
		},
		{
			name:     "no_match_is_empty_not_nil",
			criteria: product.FilterCriteria{Query: "tablet"},
			want:     []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := product.Apply(catalog(), tt.criteria)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := catalog()
	_ = product.Apply(in, product.FilterCriteria{Sort: product.SortPriceDesc})
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(in))
}

func TestApply_IsIdempotent(t *testing.T) {
	c := product.FilterCriteria{Query: "phone", MinRate: dec("3"), Sort: product.SortRateDesc}
	once := product.Apply(catalog(), c)
	twice := product.Apply(once, c)
	assert.Equal(t, ids(once), ids(twice))
}

func TestPaginate(t *testing.T) {
	all := catalog()

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(product.Paginate(all, 1, 0)))
	assert.Equal(t, []int64{1, 2}, ids(product.Paginate(all, 1, 2)))
	assert.Equal(t, []int64{5}, ids(product.Paginate(all, 3, 2)))
	assert.Empty(t, product.Paginate(all, 4, 2))
	assert.Equal(t, []int64{1, 2}, ids(product.Paginate(all, 0, 2)))
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(product.Paginate(all, 1, math.MaxInt)))

	assert.NotPanics(t, func() {
		assert.Empty(t, product.Paginate(all, math.MaxInt/50, 100))
		assert.Empty(t, product.Paginate(all, math.MaxInt, 2))
	})
}

func TestApply_PriceDescIsReversedPriceAsc(t *testing.T) {
	reversed := func(ps []domain.Product) []int64 {
		out := ids(ps)
		slices.Reverse(out)
		return out
	}

	t.Run("distinct_prices", func(t *testing.T) {
		ps := []domain.Product{
			item(1, "a", "30", "0", "0"),
			item(2, "b", "10", "0", "0"),
			item(3, "c", "25", "0", "0"),
			item(4, "d", "99.5", "0", "0"),
		}
		asc := product.Apply(ps, product.FilterCriteria{Sort: product.SortPriceAsc})
		desc := product.Apply(ps, product.FilterCriteria{Sort: product.SortPriceDesc})
		assert.Equal(t, ids(desc), reversed(asc))
	})

	t.Run("ties_keep_input_order", func(t *testing.T) {
		ps := catalog()
		asc := product.Apply(ps, product.FilterCriteria{Sort: product.SortPriceAsc})
		desc := product.Apply(ps, product.FilterCriteria{Sort: product.SortPriceDesc})

		// 3 and 5 share a price; both orders keep them as 3 then 5
		assert.Equal(t, []int64{1, 3, 5, 4, 2}, ids(asc))
		assert.Equal(t, []int64{2, 4, 3, 5, 1}, ids(desc))

		prices := func(ps []domain.Product) []string {
			out := make([]string, 0, len(ps))
			for _, p := range ps {
				out = append(out, p.Price.String())
			}
			return out
		}
		ascPrices := prices(asc)
		slices.Reverse(ascPrices)
		assert.Equal(t, prices(desc), ascPrices)
	})
}

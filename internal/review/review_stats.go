package review

import (
	"github.com/shopspring/decimal"

	"go-storefront/internal/domain"
)

// Average is the plain mean of the rates, zero for no reviews.
func Average(reviews []domain.Review) decimal.Decimal {
	if len(reviews) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, r := range reviews {
		sum = sum.Add(r.Rate)
	}
	return sum.Div(decimal.NewFromInt(int64(len(reviews))))
}

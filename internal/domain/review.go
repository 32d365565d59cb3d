package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Review struct {
	ID        int64           `json:"id"`
	UserName  string          `json:"userName,omitempty"`
	Comment   string          `json:"comment"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}

package upstream

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"go-storefront/internal/domain"
)

// flexNumber accepts a JSON number, a quoted number, an empty string or null.
// Anything else is remembered as malformed and reads as zero.
type flexNumber struct {
	value     decimal.Decimal
	present   bool
	malformed bool
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}

	s := strings.TrimSpace(strings.Trim(string(raw), `"`))
	if s == "" {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		n.malformed = true
		return nil
	}

	n.value = d
	n.present = true
	return nil
}

func (n flexNumber) Decimal() decimal.Decimal { return n.value }

func (n flexNumber) Int64() int64 { return n.value.IntPart() }

var (
	hundred = decimal.NewFromInt(100)
	five    = decimal.NewFromInt(5)
)

// fieldIssues collects the names of fields that were malformed or clamped
// while normalizing one record.
type fieldIssues []string

func (f *fieldIssues) check(name string, n flexNumber) {
	if n.malformed {
		*f = append(*f, name)
	}
}

func (f *fieldIssues) clamp(name string, d, lo, hi decimal.Decimal) decimal.Decimal {
	switch {
	case d.LessThan(lo):
		*f = append(*f, name)
		return lo
	case d.GreaterThan(hi):
		*f = append(*f, name)
		return hi
	}
	return d
}

func (f *fieldIssues) nonNegative(name string, d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		*f = append(*f, name)
		return decimal.Zero
	}
	return d
}

type productWire struct {
	ID           flexNumber `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Price        flexNumber `json:"price"`
	Discount     flexNumber `json:"discount"`
	Rate         flexNumber `json:"rate"`
	Quantity     flexNumber `json:"quantity"`
	CategoryName string     `json:"categoryName"`
	BrandName    string     `json:"brandName"`
	MainImageURL string     `json:"mainImageUrl"`
}

func (w productWire) toDomain() (domain.Product, fieldIssues) {
	var issues fieldIssues
	issues.check("id", w.ID)
	issues.check("price", w.Price)
	issues.check("discount", w.Discount)
	issues.check("rate", w.Rate)
	issues.check("quantity", w.Quantity)

	qty := issues.nonNegative("quantity", w.Quantity.Decimal())

	return domain.Product{
		ID:           w.ID.Int64(),
		Name:         strings.TrimSpace(w.Name),
		Description:  w.Description,
		Price:        issues.nonNegative("price", w.Price.Decimal()),
		Discount:     issues.clamp("discount", w.Discount.Decimal(), decimal.Zero, hundred),
		Rate:         issues.clamp("rate", w.Rate.Decimal(), decimal.Zero, five),
		Quantity:     int(qty.IntPart()),
		CategoryName: w.CategoryName,
		BrandName:    w.BrandName,
		MainImageURL: w.MainImageURL,
	}, issues
}

type namedWire struct {
	ID           flexNumber `json:"id"`
	Name         string     `json:"name"`
	MainImageURL string     `json:"mainImageUrl"`
}

type cartLineWire struct {
	ProductID   flexNumber `json:"productId"`
	ProductName string     `json:"productName"`
	Count       flexNumber `json:"count"`
	Price       flexNumber `json:"price"`
	TotalPrice  flexNumber `json:"totalPrice"`
}

type cartWire struct {
	Items []cartLineWire `json:"items"`
	Total flexNumber     `json:"total"`
}

func (w cartLineWire) toDomain() (domain.CartLine, fieldIssues) {
	var issues fieldIssues
	issues.check("productId", w.ProductID)
	issues.check("count", w.Count)
	issues.check("price", w.Price)
	issues.check("totalPrice", w.TotalPrice)

	count := issues.nonNegative("count", w.Count.Decimal())
	price := issues.nonNegative("price", w.Price.Decimal())

	total := issues.nonNegative("totalPrice", w.TotalPrice.Decimal())
	if total.IsZero() {
		total = price.Mul(count)
	}

	return domain.CartLine{
		ProductID:   w.ProductID.Int64(),
		ProductName: w.ProductName,
		Count:       int(count.IntPart()),
		Price:       price,
		TotalPrice:  total,
	}, issues
}

type reviewWire struct {
	ID        flexNumber `json:"id"`
	UserName  string     `json:"userName"`
	Comment   string     `json:"comment"`
	Rate      flexNumber `json:"rate"`
	CreatedAt string     `json:"createdAt"`
}

func (w reviewWire) toDomain() (domain.Review, fieldIssues) {
	var issues fieldIssues
	issues.check("rate", w.Rate)

	rate := issues.clamp("rate", w.Rate.Decimal(), decimal.Zero, five)

	return domain.Review{
		ID:        w.ID.Int64(),
		UserName:  w.UserName,
		Comment:   w.Comment,
		Rate:      rate,
		CreatedAt: parseTimestamp(w.CreatedAt),
	}, issues
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type paymentWire struct {
	PaymentURL  string `json:"paymentUrl"`
	URL         string `json:"url"`
	RedirectURL string `json:"redirectUrl"`
	Message     string `json:"message"`
}

func (w paymentWire) redirect() string {
	for _, u := range []string{w.PaymentURL, w.URL, w.RedirectURL} {
		if strings.TrimSpace(u) != "" {
			return strings.TrimSpace(u)
		}
	}
	return ""
}

type profileWire struct {
	ID          json.RawMessage `json:"id"`
	FullName    string          `json:"fullName"`
	UserName    string          `json:"userName"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phoneNumber"`
	City        string          `json:"city"`
}

// profileID renders a numeric or string id as text.
func (w profileWire) profileID() string {
	id := strings.TrimSpace(string(w.ID))
	if id == "null" {
		return ""
	}
	return strings.Trim(id, `"`)
}

type tokenWire struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
	Message     string `json:"message"`
}

// listOf decodes either a bare JSON array or an envelope of the form
// {"data": [...]}. Reviews use the envelope, catalog lists are bare.
type listOf[T any] []T

func (l *listOf[T]) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) > 0 && raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var env struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}
	*l = env.Data
	return nil
}

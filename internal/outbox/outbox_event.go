package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending = "PENDING"
	StatusSent    = "SENT"
	StatusFailed  = "FAILED"
)

const (
	EventCartUpdated       = "CART_UPDATED"
	EventCartCleared       = "CART_CLEARED"
	EventReviewCreated     = "REVIEW_CREATED"
	EventCheckoutSubmitted = "CHECKOUT_SUBMITTED"
)

const (
	AggregateCart     = "cart"
	AggregateReview   = "review"
	AggregateCheckout = "checkout"
)

type Event struct {
	ID            uuid.UUID       `json:"id"`
	EventType     string          `json:"eventType"`
	AggregateType string          `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	Payload       json.RawMessage `json:"payload"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type CartUpdatedPayload struct {
	Action    string `json:"action"`
	ProductID int64  `json:"productId,omitempty"`
	Count     int    `json:"count,omitempty"`
}

type ReviewCreatedPayload struct {
	ProductID int64 `json:"productId"`
	Rate      int   `json:"rate"`
}

type CheckoutSubmittedPayload struct {
	PaymentMethod string  `json:"paymentMethod"`
	ProductIDs    []int64 `json:"productIds"`
	ItemCount     int     `json:"itemCount"`
	Total         string  `json:"total"`
}

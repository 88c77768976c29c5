package domain

import "time"

// PaymentRecordedEvent is published after a checkout stores a payment.
type PaymentRecordedEvent struct {
	PaymentID       string    `json:"payment_id"`
	CartItemIDs     []string  `json:"cart_item_ids"`
	DeletedCount    int64     `json:"deleted_count"`
	FullyReconciled bool      `json:"fully_reconciled"`
	Timestamp       time.Time `json:"timestamp"`
}

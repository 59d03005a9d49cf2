package entity

import "time"

// Payment log categories. Kept numerically compatible with the
// historical audit rows.
const (
	PaymentLogTypeCheckout  int32 = 1
	PaymentLogTypeLineItems int32 = 4
)

// PaymentLog is an append-only audit entry; rows are never updated or
// deleted after creation.
type PaymentLog struct {
	ID uint64

	Content    string
	Type       int32
	CustomerID *uint64

	CreateTime time.Time
}

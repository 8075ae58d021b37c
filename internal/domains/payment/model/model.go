package model

import (
	"saleema/shared/model"
	"time"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldAmount    = "amount"
	FieldStatus    = "status"
	FieldMethod    = "payment_method"
	FieldProofURL  = "payment_proof_url"
	FieldPaidAt    = "paid_at"

	// ProofDirectory is the object storage prefix for uploaded receipts.
	ProofDirectory = "payment-proofs"
	DefaultMethod  = "bank_transfer"
)

type Status string

const (
	StatusUnpaid   Status = "unpaid"
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusRefunded Status = "refunded"
	StatusFailed   Status = "failed"
)

var transitions = map[Status][]Status{
	StatusUnpaid:   {StatusPending, StatusPaid, StatusFailed},
	StatusPending:  {StatusPaid, StatusFailed, StatusUnpaid},
	StatusFailed:   {StatusPending, StatusPaid},
	StatusPaid:     {StatusRefunded},
	StatusRefunded: nil,
}

func (s Status) Valid() bool {
	_, ok := transitions[s]

	return ok
}

// CanMoveTo reports whether a payment in s may be moved to next.
func (s Status) CanMoveTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Payment mirrors one booking. Amount is copied from the booking total at creation.
type Payment struct {
	ID        string     `db:"id"`
	BookingID string     `db:"booking_id"`
	Amount    int64      `db:"amount"`
	Status    Status     `db:"status"`
	Method    *string    `db:"payment_method"`
	ProofURL  *string    `db:"payment_proof_url"`
	PaidAt    *time.Time `db:"paid_at"`
	model.Metadata
}

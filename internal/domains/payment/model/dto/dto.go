package dto

import (
	bookingModel "saleema/internal/domains/booking/model"
	"saleema/internal/domains/payment/model"
	"saleema/shared/constant"
	"saleema/shared/timezone"
	"time"
)

const MethodWhatsApp = "whatsapp"

// Instructions tell the traveller how to pay through the sales contact.
type Instructions struct {
	Method          string `json:"payment_method"`
	WhatsAppContact string `json:"whatsapp_contact"`
	WhatsAppURL     string `json:"whatsapp_url"`
	Message         string `json:"payment_instructions"`
}

type PaymentResponse struct {
	ID              string        `json:"id"`
	BookingID       string        `json:"booking_id"`
	BookingCode     string        `json:"booking_code"`
	PackageName     string        `json:"package_name"`
	Amount          int64         `json:"total_price"`
	Status          string        `json:"payment_status"`
	Method          *string       `json:"method"`
	ProofURL        *string       `json:"payment_proof_url"`
	PaidAt          *string       `json:"paid_at"`
	PaymentDeadline string        `json:"payment_deadline"`
	Instructions    *Instructions `json:"instructions,omitempty"`
}

func (r *PaymentResponse) FromModel(payment model.Payment, booking bookingModel.Detail) {
	r.ID = payment.ID
	r.BookingID = payment.BookingID
	r.BookingCode = booking.BookingCode
	r.PackageName = booking.PackageName
	r.Amount = payment.Amount
	r.Status = string(payment.Status)
	r.Method = payment.Method
	r.ProofURL = payment.ProofURL
	r.PaidAt = formatOptional(payment.PaidAt)
	r.PaymentDeadline = timezone.Format(booking.PaymentDeadline, constant.DateFormat)
}

// ProofFile is an uploaded transfer receipt.
type ProofFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// SubmitProofRequest carries either an uploaded file or a link to one.
type SubmitProofRequest struct {
	Method   string     `json:"payment_method"    validate:"omitempty,max=50"`
	ProofURL string     `json:"payment_proof_url" validate:"omitempty,url,max=500"`
	File     *ProofFile `json:"-"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"         validate:"required,oneof=unpaid pending paid refunded failed"`
	Method string `json:"payment_method" validate:"omitempty,max=50"`
}

// Confirmation is the message consumed from the payment confirmation topic.
type Confirmation struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
	Method    string `json:"payment_method"`
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}

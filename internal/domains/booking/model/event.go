package model

import "time"

const (
	EventCreated       = "booking.created"
	EventCancelled     = "booking.cancelled"
	EventStatusChanged = "booking.status_changed"
)

// Event is published on the booking topic, keyed by booking id.
type Event struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	BookingCode   string    `json:"booking_code"`
	UserID        string    `json:"user_id"`
	PackageID     string    `json:"package_id"`
	Participants  int       `json:"total_participants"`
	TotalPrice    int64     `json:"total_price"`
	Status        Status    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, booking Booking, now time.Time) Event {
	return Event{
		Type:          eventType,
		BookingID:     booking.ID,
		BookingCode:   booking.BookingCode,
		UserID:        booking.UserID,
		PackageID:     booking.PackageID,
		Participants:  booking.Participants,
		TotalPrice:    booking.TotalPrice,
		Status:        booking.Status,
		PaymentStatus: string(booking.PaymentStatus),
		OccurredAt:    now,
	}
}

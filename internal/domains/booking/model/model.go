package model

import (
	paymentModel "saleema/internal/domains/payment/model"
	"saleema/shared/model"
	"saleema/shared/timezone"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldPackageID       = "package_id"
	FieldBookingCode     = "booking_code"
	FieldBookingDate     = "booking_date"
	FieldDepartureDate   = "departure_date"
	FieldParticipants    = "total_participants"
	FieldTotalPrice      = "total_price"
	FieldStatus          = "status"
	FieldPaymentStatus   = "payment_status"
	FieldPaymentDeadline = "payment_deadline"
	FieldCancelReason    = "cancel_reason"
	FieldCancelledAt     = "cancelled_at"
	FieldModifiedAt      = "modified_at"
	FieldModifiedBy      = "modified_by"
	FieldCreatedAt       = "created_at"

	// ConstraintBookingCode is the unique index guarding booking codes.
	ConstraintBookingCode = "bookings_booking_code_key"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// forward holds the non-cancelling moves. Cancellation has its own rules.
var forward = map[Status]Status{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusCompleted,
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}

	return false
}

// Active statuses still hold seats on the package.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanAdvanceTo reports whether next is the single forward step from s.
func (s Status) CanAdvanceTo(next Status) bool {
	return forward[s] == next && next != ""
}

type Booking struct {
	ID              string              `db:"id"`
	UserID          string              `db:"user_id"`
	PackageID       string              `db:"package_id"`
	BookingCode     string              `db:"booking_code"`
	BookingDate     time.Time           `db:"booking_date"`
	DepartureDate   time.Time           `db:"departure_date"`
	Participants    int                 `db:"total_participants"`
	TotalPrice      int64               `db:"total_price"`
	Status          Status              `db:"status"`
	PaymentStatus   paymentModel.Status `db:"payment_status"`
	ContactName     string              `db:"contact_name"`
	ContactPhone    string              `db:"contact_phone"`
	ContactEmail    string              `db:"contact_email"`
	Passengers      Passengers          `db:"passengers"`
	SpecialRequests string              `db:"special_requests"`
	PaymentDeadline time.Time           `db:"payment_deadline"`
	CancelReason    *string             `db:"cancel_reason"`
	CancelledAt     *time.Time          `db:"cancelled_at"`
	model.Metadata
}

// OwnedBy reports whether userID placed the booking.
func (b Booking) OwnedBy(userID string) bool {
	return userID != "" && b.UserID == userID
}

// Started is true from local midnight of the departure day onwards.
func (b Booking) Started(now time.Time) bool {
	return !timezone.Date(b.DepartureDate).After(now)
}

// Detail is a booking joined with the package it reserves.
type Detail struct {
	Booking
	PackageName     string `db:"package_name"     table:"packages" column:"name"`
	PackageLocation string `db:"package_location" table:"packages" column:"location"`
	PackageImageURL string `db:"package_image"    table:"packages" column:"image_url"`
}

func (Detail) GetJoinQuery() string {
	return "JOIN packages ON packages.id = bookings.package_id"
}

package dto

import (
	"saleema/internal/domains/booking/model"
	"saleema/shared"
	"saleema/shared/constant"
	gDto "saleema/shared/dto"
	"saleema/shared/timezone"
	"time"
)

type PassengerRequest struct {
	FullName       string `json:"fullname"        validate:"required,max=100"`
	PhoneNumber    string `json:"phone_number"    validate:"omitempty,max=20"`
	Email          string `json:"email"           validate:"omitempty,email,max=100"`
	DocumentType   string `json:"document_type"   validate:"omitempty,max=30"`
	DocumentNumber string `json:"document_number" validate:"omitempty,max=50"`
}

// CreateBookingRequest carries the contact block as optional flat fields;
// empty ones are taken from the first passenger.
type CreateBookingRequest struct {
	PackageID       string             `json:"package_id"         validate:"required"`
	Participants    int                `json:"total_participants"`
	Passengers      []PassengerRequest `json:"passenger_details"  validate:"required,dive"`
	DepartureDate   string             `json:"departure_date"     validate:"required,dateonly"`
	FullName        string             `json:"fullname"           validate:"omitempty,max=100"`
	PhoneNumber     string             `json:"phone_number"       validate:"omitempty,max=20"`
	Email           string             `json:"email"              validate:"omitempty,email,max=100"`
	SpecialRequests string             `json:"special_requests"   validate:"omitempty,max=500"`
}

func (c *CreateBookingRequest) ToPassengers() model.Passengers {
	passengers := make(model.Passengers, len(c.Passengers))
	for i, p := range c.Passengers {
		passengers[i] = model.Passenger(p)
	}

	return passengers
}

func (c *CreateBookingRequest) ToContact() model.Contact {
	return model.Contact{
		Name:  c.FullName,
		Phone: c.PhoneNumber,
		Email: c.Email,
	}
}

type CreateBookingResponse struct {
	ID              string `json:"id"`
	BookingCode     string `json:"booking_code"`
	TotalPrice      int64  `json:"total_price"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"payment_status"`
	PaymentDeadline string `json:"payment_deadline"`
}

func (r *CreateBookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.BookingCode = model.BookingCode
	r.TotalPrice = model.TotalPrice
	r.Status = string(model.Status)
	r.PaymentStatus = string(model.PaymentStatus)
	r.PaymentDeadline = timezone.Format(model.PaymentDeadline, constant.DateFormat)
}

type BookingResponse struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	PackageID       string             `json:"package_id"`
	PackageName     string             `json:"package_name"`
	PackageLocation string             `json:"package_location"`
	PackageImage    string             `json:"package_image"`
	BookingCode     string             `json:"booking_code"`
	BookingDate     string             `json:"booking_date"`
	DepartureDate   string             `json:"departure_date"`
	Participants    int                `json:"total_participants"`
	TotalPrice      int64              `json:"total_price"`
	Status          string             `json:"status"`
	PaymentStatus   string             `json:"payment_status"`
	FullName        string             `json:"fullname"`
	PhoneNumber     string             `json:"phone_number"`
	Email           string             `json:"email"`
	Passengers      []PassengerRequest `json:"passenger_details"`
	SpecialRequests string             `json:"special_requests"`
	PaymentDeadline string             `json:"payment_deadline"`
	CancelReason    *string            `json:"cancel_reason"`
	CancelledAt     *string            `json:"cancelled_at"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Detail) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.PackageID = model.PackageID
	r.PackageName = model.PackageName
	r.PackageLocation = model.PackageLocation
	r.PackageImage = model.PackageImageURL
	r.BookingCode = model.BookingCode
	r.BookingDate = timezone.Format(model.BookingDate, constant.DateOnlyFormat)
	r.DepartureDate = timezone.FormatDate(model.DepartureDate)
	r.Participants = model.Participants
	r.TotalPrice = model.TotalPrice
	r.Status = string(model.Status)
	r.PaymentStatus = string(model.PaymentStatus)
	r.FullName = model.ContactName
	r.PhoneNumber = model.ContactPhone
	r.Email = model.ContactEmail
	r.SpecialRequests = model.SpecialRequests
	r.PaymentDeadline = timezone.Format(model.PaymentDeadline, constant.DateFormat)
	r.CancelReason = model.CancelReason
	r.CancelledAt = formatOptional(model.CancelledAt)
	r.Metadata = gDto.MetadataFrom(model.Metadata)

	r.Passengers = make([]PassengerRequest, len(model.Passengers))
	for i, p := range model.Passengers {
		r.Passengers[i] = PassengerRequest(p)
	}
}

type BookingSummary struct {
	ID            string `json:"id"`
	BookingCode   string `json:"booking_code"`
	PackageID     string `json:"package_id"`
	PackageName   string `json:"package_name"`
	PackageImage  string `json:"package_image"`
	BookingDate   string `json:"booking_date"`
	DepartureDate string `json:"departure_date"`
	Participants  int    `json:"total_participants"`
	TotalPrice    int64  `json:"total_price"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

func (r *BookingSummary) FromModel(model model.Detail) {
	r.ID = model.ID
	r.BookingCode = model.BookingCode
	r.PackageID = model.PackageID
	r.PackageName = model.PackageName
	r.PackageImage = model.PackageImageURL
	r.BookingDate = timezone.Format(model.BookingDate, constant.DateOnlyFormat)
	r.DepartureDate = timezone.FormatDate(model.DepartureDate)
	r.Participants = model.Participants
	r.TotalPrice = model.TotalPrice
	r.Status = string(model.Status)
	r.PaymentStatus = string(model.PaymentStatus)
}

type GetBookingsResponse struct {
	Bookings  []BookingSummary `json:"bookings"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Detail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingSummary, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type CancelBookingRequest struct {
	Reason string `json:"cancel_reason" validate:"omitempty,max=500"`
}

type CancelBookingResponse struct {
	ID            string  `json:"id"`
	BookingCode   string  `json:"booking_code"`
	Status        string  `json:"status"`
	CancelReason  *string `json:"cancel_reason"`
	CancelledAt   *string `json:"cancelled_at"`
	DepartureDate string  `json:"departure_date"`
}

func (r *CancelBookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.BookingCode = model.BookingCode
	r.Status = string(model.Status)
	r.CancelReason = model.CancelReason
	r.CancelledAt = formatOptional(model.CancelledAt)
	r.DepartureDate = timezone.FormatDate(model.DepartureDate)
}

type UpdateStatusRequest struct {
	Status string `json:"status"        validate:"required,oneof=pending confirmed cancelled completed"`
	Reason string `json:"cancel_reason" validate:"omitempty,max=500"`
}

type ReviewEligibilityResponse struct {
	BookingID string `json:"booking_id"`
	PackageID string `json:"package_id"`
	Eligible  bool   `json:"eligible"`
}

// Ticket is the rendered travel document for a paid booking.
type Ticket struct {
	FileName string
	Content  []byte
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}

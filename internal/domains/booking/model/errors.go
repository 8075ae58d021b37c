package model

import (
	"net/http"
	"saleema/shared/failure"
)

var (
	ErrBookingNotFound         = &failure.Failure{Code: http.StatusNotFound, Message: "booking not found"}
	ErrInvalidParticipantCount = &failure.Failure{Code: http.StatusBadRequest, Message: "participant count must be greater than zero"}
	ErrPassengerCountMismatch  = &failure.Failure{Code: http.StatusBadRequest, Message: "passenger details must match participant count"}
	ErrDepartureInPast         = &failure.Failure{Code: http.StatusBadRequest, Message: "departure date must be in the future"}
	ErrInvalidDepartureDate    = &failure.Failure{Code: http.StatusBadRequest, Message: "departure date must use YYYY-MM-DD"}
	ErrDuplicateBookingCode    = &failure.Failure{Code: http.StatusConflict, Message: "could not allocate a unique booking code, please retry"}
	ErrBookingCancelled        = &failure.Failure{Code: http.StatusBadRequest, Message: "booking has been cancelled"}
	ErrAlreadyCancelled        = &failure.Failure{Code: http.StatusBadRequest, Message: "booking already cancelled"}
	ErrTripAlreadyStarted      = &failure.Failure{Code: http.StatusBadRequest, Message: "cannot cancel, trip already started"}
	ErrPaymentIncomplete       = &failure.Failure{Code: http.StatusBadRequest, Message: "cannot download ticket, payment not completed"}
	ErrNotOwner                = &failure.Failure{Code: http.StatusForbidden, Message: "you don't have access to this booking"}
	ErrInvalidStatusTransition = &failure.Failure{Code: http.StatusBadRequest, Message: "booking status transition not allowed"}
	ErrBusy                    = &failure.Failure{Code: http.StatusServiceUnavailable, Message: "package is busy, please retry"}
	ErrTotalPriceOverflow      = &failure.Failure{Code: http.StatusBadRequest, Message: "total price is out of range"}
	ErrUnknownBookingScope     = &failure.Failure{Code: http.StatusBadRequest, Message: "unknown booking scope"}
)

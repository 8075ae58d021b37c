package model

import (
	"net/http"
	"saleema/shared/failure"
)

var (
	ErrPaymentNotFound      = &failure.Failure{Code: http.StatusNotFound, Message: "payment not found"}
	ErrInvalidStatus        = &failure.Failure{Code: http.StatusBadRequest, Message: "invalid payment status"}
	ErrInvalidTransition    = &failure.Failure{Code: http.StatusBadRequest, Message: "payment status transition not allowed"}
	ErrBookingCancelled     = &failure.Failure{Code: http.StatusBadRequest, Message: "cannot settle payment of a cancelled booking"}
	ErrProofNotAccepted     = &failure.Failure{Code: http.StatusBadRequest, Message: "payment proof can only be submitted for unpaid or failed payments"}
	ErrProofRequired        = &failure.Failure{Code: http.StatusBadRequest, Message: "payment proof file or url is required"}
	ErrProofStorageDisabled = &failure.Failure{Code: http.StatusServiceUnavailable, Message: "payment proof upload is not available, submit a link instead"}
)

package model

import (
	"errors"
	"net/http"
	"saleema/shared/failure"
)

var (
	ErrPackageNotFound = &failure.Failure{Code: http.StatusNotFound, Message: "package not found"}
	ErrQuotaFull       = &failure.Failure{Code: http.StatusBadRequest, Message: "package quota is full"}
)

// ErrQuotaGuard is returned by the repository when a guarded quota update
// matched no row. It never leaves the domain.
var ErrQuotaGuard = errors.New("quota guard rejected update")

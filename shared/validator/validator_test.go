package validator_test

import (
	"net/http"
	"saleema/shared/failure"
	"saleema/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passenger struct {
	FullName string `json:"fullname" validate:"required,max=100"`
	Age      int    `json:"age"      validate:"gte=0,lte=120"`
}

type bookingRequest struct {
	PackageID     string      `json:"package_id"        validate:"required"`
	DepartureDate string      `json:"departure_date"    validate:"required,dateonly"`
	Email         string      `json:"email"             validate:"omitempty,email"`
	ProofURL      string      `json:"payment_proof_url" validate:"omitempty,url"`
	Status        string      `json:"status"            validate:"omitempty,oneof=pending confirmed"`
	Passengers    []passenger `json:"passenger_details" validate:"required,dive"`
}

func validRequest() bookingRequest {
	return bookingRequest{
		PackageID:     "pkg-1",
		DepartureDate: "2030-01-10",
		Passengers:    []passenger{{FullName: "Aisyah", Age: 30}},
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*bookingRequest)
		wantMessage string
	}{
		{name: "valid", mutate: func(*bookingRequest) {}},
		{
			name:        "missing package",
			mutate:      func(r *bookingRequest) { r.PackageID = "" },
			wantMessage: "package_id is required",
		},
		{
			name:        "datetime is not a date",
			mutate:      func(r *bookingRequest) { r.DepartureDate = "2030-01-10T08:00:00Z" },
			wantMessage: "departure_date must be a date in YYYY-MM-DD format",
		},
		{
			name:        "day first is not a date",
			mutate:      func(r *bookingRequest) { r.DepartureDate = "10-01-2030" },
			wantMessage: "departure_date must be a date in YYYY-MM-DD format",
		},
		{
			name:        "bad email",
			mutate:      func(r *bookingRequest) { r.Email = "aisyah" },
			wantMessage: "email must be a valid email address",
		},
		{
			name:        "bad url",
			mutate:      func(r *bookingRequest) { r.ProofURL = "not a url" },
			wantMessage: "payment_proof_url must be a valid URL",
		},
		{
			name:        "unknown status",
			mutate:      func(r *bookingRequest) { r.Status = "refunded" },
			wantMessage: "status must be one of pending confirmed",
		},
		{
			name:        "nested passenger field",
			mutate:      func(r *bookingRequest) { r.Passengers[0].FullName = "" },
			wantMessage: "passenger_details[0].fullname is required",
		},
		{
			name:        "passenger age",
			mutate:      func(r *bookingRequest) { r.Passengers[0].Age = 121 },
			wantMessage: "passenger_details[0].age must be less than or equal to 120",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantMessage == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.StatusCode(err))
			assert.Equal(t, tt.wantMessage, err.Error())
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid body",
			body: `{"package_id":"pkg-1","departure_date":"2030-01-10","passenger_details":[{"fullname":"Aisyah"}]}`,
		},
		{name: "malformed json", body: `{"package_id":`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
		{name: "wrong type", body: `{"package_id":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := bookingRequest{}

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "pkg-1", req.PackageID)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.StatusCode(err))
		})
	}
}

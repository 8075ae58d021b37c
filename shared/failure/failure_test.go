package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saleema/shared/failure"
)

var errQuotaFull = failure.New(http.StatusBadRequest, "package quota is full")

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("invalid body")), wantCode: http.StatusBadRequest, wantMsg: "invalid body"},
		{name: "bad request from string", err: failure.BadRequestFromString("bad scope"), wantCode: http.StatusBadRequest, wantMsg: "bad scope"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), wantCode: http.StatusUnauthorized, wantMsg: "token expired"},
		{name: "not found", err: failure.NotFound("booking"), wantCode: http.StatusNotFound, wantMsg: "booking"},
		{name: "forbidden", err: failure.ForbiddenError, wantCode: http.StatusForbidden, wantMsg: failure.ForbiddenError.Message},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fail, ok := failure.As(tt.err)
			require.True(t, ok)

			assert.Equal(t, tt.wantCode, fail.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestBadRequest_NilStaysNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestAs_UnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("reserve seats: %w", errQuotaFull)

	fail, ok := failure.As(wrapped)
	require.True(t, ok)

	assert.Same(t, errQuotaFull, fail)
	assert.ErrorIs(t, wrapped, errQuotaFull)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, failure.StatusCode(fmt.Errorf("wrapped: %w", errQuotaFull)))
	assert.Equal(t, http.StatusInternalServerError, failure.StatusCode(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, failure.StatusCode(nil))
}

package payment_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"saleema/infras/otel/mocks"
	paymentMocks "saleema/internal/domains/payment/mocks"
	"saleema/internal/domains/payment/model"
	"saleema/internal/domains/payment/model/dto"
	"saleema/internal/handlers/payment"
	"saleema/shared/constant"
)

func newRouter(t *testing.T) (http.Handler, *paymentMocks.MockPaymentService) {
	t.Helper()

	svc := paymentMocks.NewMockPaymentService(gomock.NewController(t))
	handler := payment.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	return req
}

func TestGetPayment(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		GetDetail(gomock.Any(), "b-1").
		Return(dto.PaymentResponse{BookingID: "b-1", Status: string(model.StatusUnpaid)}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/b-1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"payment_status":"unpaid"`)
}

func TestGetPayment_NotFound(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().GetDetail(gomock.Any(), "b-1").Return(dto.PaymentResponse{}, model.ErrPaymentNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/b-1", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitProof_JSON(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		SubmitProof(gomock.Any(), "b-1", dto.SubmitProofRequest{Method: "bank_transfer", ProofURL: "https://cdn.example.com/r.jpg"}).
		Return(dto.PaymentResponse{Status: string(model.StatusPending)}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/payments/b-1/proof",
		`{"payment_method":"bank_transfer","payment_proof_url":"https://cdn.example.com/r.jpg"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitProof_InvalidURL(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/payments/b-1/proof", `{"payment_proof_url":"not a url"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitProof_Multipart(t *testing.T) {
	router, svc := newRouter(t)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	require.NoError(t, form.WriteField("payment_method", "bank_transfer"))

	part, err := form.CreateFormFile("payment_proof", "receipt.jpg")
	require.NoError(t, err)

	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	svc.EXPECT().
		SubmitProof(gomock.Any(), "b-1", gomock.Any()).
		DoAndReturn(func(_ any, _ string, req dto.SubmitProofRequest) (dto.PaymentResponse, error) {
			assert.Equal(t, "bank_transfer", req.Method)
			require.NotNil(t, req.File)
			assert.Equal(t, "receipt.jpg", req.File.Name)
			assert.Equal(t, []byte("jpeg-bytes"), req.File.Data)

			return dto.PaymentResponse{Status: string(model.StatusPending)}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/payments/b-1/proof", body)
	req.Header.Set(constant.RequestHeaderContentType, form.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitProof_StorageDisabled(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		SubmitProof(gomock.Any(), "b-1", gomock.Any()).
		Return(dto.PaymentResponse{}, model.ErrProofStorageDisabled)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("payment_proof", "receipt.png")
	require.NoError(t, err)

	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/payments/b-1/proof", body)
	req.Header.Set(constant.RequestHeaderContentType, form.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUpdatePaymentStatus(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		call     bool
		err      error
		wantCode int
	}{
		{name: "paid", body: `{"status":"paid"}`, call: true, wantCode: http.StatusOK},
		{name: "unknown status", body: `{"status":"settled"}`, wantCode: http.StatusBadRequest},
		{name: "missing status", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "transition refused", body: `{"status":"refunded"}`, call: true, err: model.ErrInvalidTransition, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)

			if tt.call {
				svc.EXPECT().
					UpdateStatus(gomock.Any(), "b-1", gomock.Any()).
					Return(dto.PaymentResponse{}, tt.err)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, jsonRequest(http.MethodPatch, "/payments/b-1/status", tt.body))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

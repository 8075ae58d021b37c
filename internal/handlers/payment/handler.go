package payment

import (
	"fmt"
	"io"
	"net/http"
	"saleema/infras/otel"
	"saleema/internal/domains/payment/model/dto"
	"saleema/internal/domains/payment/service"
	"saleema/shared/constant"
	"saleema/shared/failure"
	"saleema/shared/validator"
	"saleema/transport/http/response"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const (
	formProof  = "payment_proof"
	formMethod = "payment_method"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments/{booking_id}", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPayment)
		routerGroup.Post("/proof", handler.SubmitProof)
		routerGroup.Patch("/status", handler.UpdatePaymentStatus)
	})
}

// GetPayment returns the payment of a booking with WhatsApp payment instructions.
// @Summary Get payment detail
// @Tags Payment
// @Produce json
// @Param booking_id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment detail"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{booking_id} [get]
// @Security BearerAuth
func (handler *Handler) GetPayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayment")
	defer scope.End()

	payment, err := handler.service.GetDetail(ctx, chi.URLParam(request, constant.RequestParamBookingID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, payment)
}

// SubmitProof attaches a transfer receipt and moves the payment to pending verification.
// @Summary Submit payment proof
// @Description Accepts a multipart upload in payment_proof or a JSON body with payment_proof_url.
// @Tags Payment
// @Accept json,mpfd
// @Produce json
// @Param booking_id path string true "Booking ID"
// @Param payment_proof formData file false "Transfer receipt"
// @Param payment_method formData string false "Payment method"
// @Param request body dto.SubmitProofRequest false "Proof link"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment detail"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 503 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{booking_id}/proof [post]
// @Security BearerAuth
func (handler *Handler) SubmitProof(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitProof")
	defer scope.End()

	req, err := proofRequest(request)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read payment proof")

		response.WithError(writer, err)

		return
	}

	payment, err := handler.service.SubmitProof(ctx, chi.URLParam(request, constant.RequestParamBookingID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit payment proof")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, payment)
}

// UpdatePaymentStatus sets the payment status. Admin only.
// @Summary Update payment status
// @Tags Payment
// @Accept json
// @Produce json
// @Param booking_id path string true "Booking ID"
// @Param request body dto.UpdateStatusRequest true "New payment status"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment detail"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{booking_id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePaymentStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePaymentStatus")
	defer scope.End()

	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	payment, err := handler.service.UpdateStatus(ctx, chi.URLParam(request, constant.RequestParamBookingID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update payment status")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, payment)
}

func proofRequest(request *http.Request) (dto.SubmitProofRequest, error) {
	req := dto.SubmitProofRequest{}

	if !strings.HasPrefix(request.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData) {
		return req, validator.Validate(request.Body, &req)
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return req, failure.BadRequest(fmt.Errorf("failed to parse multipart form: %w", err)) //nolint:wrapcheck
	}

	req.Method = request.FormValue(formMethod)

	file, header, err := request.FormFile(formProof)
	if err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return req, fmt.Errorf("failed to read payment proof: %w", err)
		}

		req.File = &dto.ProofFile{
			Name:        header.Filename,
			ContentType: header.Header.Get(constant.RequestHeaderContentType),
			Data:        data,
		}
	}

	return req, validator.ValidateStruct(&req)
}

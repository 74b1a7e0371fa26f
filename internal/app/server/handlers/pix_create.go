package handlers

import (
	"errors"
	"net/http"

	"francoggm/wiinpay-pix-relay/internal/app/pix"
	"francoggm/wiinpay-pix-relay/internal/app/server/middleware"
	"francoggm/wiinpay-pix-relay/internal/models"

	"go.uber.org/zap"
)

func (h *Handlers) CreatePix(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	decoded, err := readJSON(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "JSON inválido", Details: err.Error()})
		return
	}

	// any non-object body validates as an empty request
	body, _ := decoded.(map[string]any)

	result, err := h.pixService.CreatePayment(r.Context(), requestID, body)
	if err != nil {
		h.writeCreateError(w, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) writeCreateError(w http.ResponseWriter, requestID string, err error) {
	var (
		cfgErr      *pix.ConfigurationError
		validErr    *pix.ValidationError
		upstreamErr *pix.UpstreamError
	)

	switch {
	case errors.As(err, &validErr):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: validErr.Message})
	case errors.As(err, &cfgErr):
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: cfgErr.Message, Details: cfgErr.Details})
	case errors.As(err, &upstreamErr):
		writeJSON(w, http.StatusBadGateway, models.ProviderFailureResponse{
			Error:          "Falha ao criar pagamento na WiinPay",
			WiinpayStatus:  upstreamErr.StatusCode,
			WiinpayPayload: upstreamErr.Body,
		})
	default:
		h.logger.Error("wiinpay_create_error",
			zap.String("request_id", requestID),
			zap.String("message", err.Error()),
			zap.String("error_type", errorType(err)),
		)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Erro interno ao criar Pix",
			Details: err.Error(),
		})
	}
}

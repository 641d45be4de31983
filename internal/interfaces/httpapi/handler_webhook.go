package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/greentips/tips-platform/internal/usecase"
)

// Provider payloads carry more fields than we consume, so unknown fields
// are tolerated here unlike the first-party endpoints.
type paymentWebhookRequest struct {
	Event         string  `json:"event"`
	Status        string  `json:"status"`
	CustomerEmail string  `json:"customer_email"`
	Email         string  `json:"email"`
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
}

type webhookUserDTO struct {
	Email string `json:"email"`
	IsVIP bool   `json:"is_vip"`
}

type paymentWebhookResponse struct {
	Message string         `json:"message"`
	User    webhookUserDTO `json:"user"`
}

func (h *Handler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PaymentWebhook")
	defer span.End()

	var req paymentWebhookRequest
	if err := jsoniter.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	activated, err := h.billingService.ActivateVIP(ctx, usecase.PaymentEvent{
		Event:         req.Event,
		Status:        req.Status,
		CustomerEmail: req.CustomerEmail,
		Email:         req.Email,
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "payment webhook rejected", "transaction_id", req.TransactionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, paymentWebhookResponse{
		Message: "VIP status updated",
		User: webhookUserDTO{
			Email: activated.Email,
			IsVIP: activated.IsVIP,
		},
	})
}

// PaymentWebhookStatus lets the payment provider verify the endpoint is up.
func (h *Handler) PaymentWebhookStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PaymentWebhookStatus")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"status":   "active",
		"endpoint": "/v1/webhooks/kirvano",
		"method":   http.MethodPost,
	})
}

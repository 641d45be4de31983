package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/greentips/tips-platform/internal/domain/tip"
	"github.com/greentips/tips-platform/internal/usecase"
)

type Handler struct {
	tipService     *usecase.TipService
	syncService    *usecase.SyncService
	billingService *usecase.BillingService
	logger         *slog.Logger
	validator      *validator.Validate
}

func NewHandler(
	tipService *usecase.TipService,
	syncService *usecase.SyncService,
	billingService *usecase.BillingService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		tipService:     tipService,
		syncService:    syncService,
		billingService: billingService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTips(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTips")
	defer span.End()

	filter := tip.Filter{Sport: sportQueryParam(r)}
	if raw := strings.TrimSpace(r.URL.Query().Get("vip")); raw != "" {
		isVIP, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: vip must be a boolean, got %q", usecase.ErrInvalidInput, raw))
			return
		}
		filter.IsVIP = &isVIP
	}

	tips, err := h.tipService.ListTips(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list tips failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tipsToDTO(tips))
}

func (h *Handler) ListFreeTips(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFreeTips")
	defer span.End()

	tips, err := h.tipService.FreeTips(ctx, sportQueryParam(r))
	if err != nil {
		h.logger.WarnContext(ctx, "list free tips failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tipsToDTO(tips))
}

func (h *Handler) ListVIPTips(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVIPTips")
	defer span.End()

	tips, err := h.tipService.VIPTips(ctx, sportQueryParam(r))
	if err != nil {
		h.logger.WarnContext(ctx, "list vip tips failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tipsToDTO(tips))
}

func (h *Handler) UpdateTipStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTipStatus")
	defer span.End()

	tipID, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("tipID")), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: tip id must be an integer", usecase.ErrInvalidInput))
		return
	}

	var req updateTipStatusRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.tipService.UpdateTipStatus(ctx, tipID, req.Status)
	if err != nil {
		h.logger.WarnContext(ctx, "update tip status failed", "tip_id", tipID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tipToDTO(updated))
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStatistics")
	defer span.End()

	current, err := h.tipService.GetStatistics(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get statistics failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statisticsToDTO(current))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func sportQueryParam(r *http.Request) *string {
	sport := strings.TrimSpace(r.URL.Query().Get("sport"))
	if sport == "" {
		return nil
	}
	return &sport
}

type updateTipStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=green red"`
}

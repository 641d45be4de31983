package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/greentips/tips-platform/internal/usecase"
)

const (
	syncActionFull       = "full"
	syncActionFootball   = "football"
	syncActionBasketball = "basketball"
	syncActionTips       = "tips"
)

type syncRequest struct {
	Action string `json:"action" validate:"omitempty,oneof=full football basketball tips"`
}

type syncStageDTO struct {
	Action  string `json:"action"`
	Success bool   `json:"success"`
	Count   int    `json:"count"`
}

// RunSync triggers one sync action. An empty body or action means a full
// run: football, basketball, then tip generation.
func (h *Handler) RunSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSync")
	defer span.End()

	req, err := h.decodeSyncRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	switch req.Action {
	case syncActionFull:
		summary, err := h.syncService.RunFullSync(ctx)
		if err != nil {
			h.logger.WarnContext(ctx, "full sync rejected", "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, summary)
	case syncActionFootball:
		h.runSingleSyncStage(w, r, req.Action, h.syncService.SyncFootball)
	case syncActionBasketball:
		h.runSingleSyncStage(w, r, req.Action, h.syncService.SyncBasketball)
	case syncActionTips:
		h.runSingleSyncStage(w, r, req.Action, h.syncService.GenerateDailyTips)
	}
}

// RunSyncJob is the scheduler entry point. It always runs the full sync.
func (h *Handler) RunSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncJob")
	defer span.End()

	summary, err := h.syncService.RunFullSync(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "scheduled sync job rejected", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) runSingleSyncStage(w http.ResponseWriter, r *http.Request, action string, stage func(ctx context.Context) (int, error)) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.runSingleSyncStage")
	defer span.End()

	count, err := stage(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "sync stage failed", "action", action, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncStageDTO{
		Action:  action,
		Success: true,
		Count:   count,
	})
}

func (h *Handler) decodeSyncRequest(r *http.Request) (syncRequest, error) {
	req := syncRequest{Action: syncActionFull}

	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		return syncRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if req.Action == "" {
		req.Action = syncActionFull
	}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return syncRequest{}, err
	}

	return req, nil
}

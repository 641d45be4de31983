package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerTipRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tips", handler.ListTips)
	mux.HandleFunc("GET /v1/tips/free", handler.ListFreeTips)
	mux.HandleFunc("GET /v1/tips/vip", handler.ListVIPTips)
	mux.HandleFunc("PUT /v1/tips/{tipID}/status", handler.UpdateTipStatus)
	mux.HandleFunc("GET /v1/statistics", handler.GetStatistics)
}

func registerSyncRoutes(mux *http.ServeMux, handler *Handler, syncJobToken string) {
	mux.HandleFunc("POST /v1/sync", handler.RunSync)
	// The external scheduler probes with GET and triggers with POST.
	mux.Handle("GET /v1/internal/jobs/sync", RequireSyncJobToken(syncJobToken, http.HandlerFunc(handler.RunSyncJob)))
	mux.Handle("POST /v1/internal/jobs/sync", RequireSyncJobToken(syncJobToken, http.HandlerFunc(handler.RunSyncJob)))
}

func registerWebhookRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/webhooks/kirvano", handler.PaymentWebhookStatus)
	mux.HandleFunc("POST /v1/webhooks/kirvano", handler.PaymentWebhook)
}

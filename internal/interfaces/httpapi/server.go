package httpapi

import (
	"log/slog"
	"net/http"
)

type routerOptions struct {
	requestBodyCaptureBytes int
}

type RouterOption func(*routerOptions)

// WithRequestBodyCapture attaches up to maxBytes of each request body to
// the active trace span.
func WithRequestBodyCapture(maxBytes int) RouterOption {
	return func(o *routerOptions) {
		o.requestBodyCaptureBytes = maxBytes
	}
}

func NewRouter(
	handler *Handler,
	logger *slog.Logger,
	corsAllowedOrigins []string,
	syncJobToken string,
	opts ...RouterOption,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	var options routerOptions
	for _, opt := range opts {
		opt(&options)
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerTipRoutes(mux, handler)
	registerSyncRoutes(mux, handler, syncJobToken)
	registerWebhookRoutes(mux, handler)

	var chain http.Handler = CORS(corsAllowedOrigins, recoverPanic(logger, mux))
	if options.requestBodyCaptureBytes > 0 {
		chain = captureRequestBody(options.requestBodyCaptureBytes, chain)
	}

	return RequestTracing(RequestLogging(logger, chain))
}

func recoverPanic(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

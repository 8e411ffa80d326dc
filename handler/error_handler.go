package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/workspacebilling/pkg/logger"
)

// DefaultErrorHandler renders err as a JSON error envelope.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	_ = JSONError(err).Render(w, r)
}

// LoggingErrorHandler logs server-side failures before rendering them.
// Errors on DataStar streams are only logged since headers are already sent.
func LoggingErrorHandler(log *slog.Logger) ErrorHandler {
	log = logger.OrDiscard(log)
	return func(w http.ResponseWriter, r *http.Request, err error) {
		status := http.StatusInternalServerError
		_ = errorToDetail(err, &status)
		if status >= http.StatusInternalServerError {
			log.ErrorContext(r.Context(), "request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				logger.Error(err),
			)
		}
		if IsDataStar(r) && w.Header().Get("Content-Type") == DataStarAcceptHeader {
			return
		}
		DefaultErrorHandler(w, r, err)
	}
}

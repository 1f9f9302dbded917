package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fashion-admin/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

// AuditRecorder stores audit entries.
type AuditRecorder interface {
	Record(ctx context.Context, e models.AuditEntry) (models.AuditEntry, error)
}

// AuditMiddleware records every mutating request made by an authenticated admin once
// it has been answered. It must run after JWTMiddleware.
func AuditMiddleware(recorder AuditRecorder, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			actor, ok := Username(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			_, err := recorder.Record(context.WithoutCancel(r.Context()), models.AuditEntry{
				Actor:      actor,
				Method:     r.Method,
				Path:       r.URL.Path,
				StatusCode: status,
				IPAddress:  ClientIP(r),
			})
			if err != nil {
				log.Error("failed to record audit entry",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
			}
		})
	}
}

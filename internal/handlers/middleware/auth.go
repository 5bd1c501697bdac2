package middleware

import (
	"context"
	"net/http"

	"github.com/nkiryanov/bankdemo/internal/handlers/render"
	"github.com/nkiryanov/bankdemo/internal/handlers/userctx"
)

type authService interface {
	Authenticate(ctx context.Context, r *http.Request) (string, error)
}

// AuthMiddleware rejects requests without valid bearer token
// Response never tells why token was rejected
func AuthMiddleware(as authService, l logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := as.Authenticate(r.Context(), r)
			if err != nil {
				l.Info("request not authenticated", "uri", r.RequestURI, "reason", err.Error())
				render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if rec, ok := w.(subjectRecorder); ok {
				rec.recordSubject(subject)
			}
			ctx := userctx.New(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

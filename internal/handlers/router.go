package handlers

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nkiryanov/bankdemo/internal/handlers/middleware"
	"github.com/nkiryanov/bankdemo/internal/logger"
	"github.com/nkiryanov/bankdemo/internal/models"
	"github.com/nkiryanov/bankdemo/internal/service/account"
	"github.com/nkiryanov/bankdemo/internal/service/document"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

type Services struct {
	Auth     authService
	Account  accountService
	Document documentService

	// Used by health check
	Storage pinger
}

// NewRouter wires every route
// reg is used both to register http metrics and to serve /metrics
func NewRouter(s Services, reg *prometheus.Registry, l logger.Logger) (http.Handler, error) {
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	authMiddleware := middleware.AuthMiddleware(s.Auth, l)
	withAuth := func(h http.Handler) http.Handler {
		return authMiddleware(h)
	}

	mux := http.NewServeMux()

	mux.Handle("POST /auth/token", handleIssueToken(s.Auth, l))

	mux.Handle("POST /accounts", withAuth(handleOpenAccount(s.Account, l)))
	mux.Handle("GET /accounts", withAuth(handleListAccounts(s.Account, l)))
	mux.Handle("GET /accounts/{id}", withAuth(handleGetAccount(s.Account, l)))

	mux.Handle("POST /documents", withAuth(handleSaveDocument(s.Document, l)))
	mux.Handle("GET /documents", withAuth(handleListDocuments(s.Document, l)))
	mux.Handle("GET /documents/{id}", withAuth(handleGetDocument(s.Document, l)))

	mux.Handle("GET /health", handleHealth(s.Storage, l))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	handler := chain(mux,
		middleware.RequestID,
		metrics.Middleware,
		middleware.LoggerMiddleware(l),
	)

	return handler, nil
}

type authService interface {
	// Issue access token for username
	// Empty username gets default subject
	IssueToken(ctx context.Context, username string) (models.AccessToken, error)

	// Return token subject if request authenticated
	// Has to return error matching apperrors.ErrUnauthorized otherwise
	Authenticate(ctx context.Context, r *http.Request) (string, error)
}

type accountService interface {
	Open(ctx context.Context, req account.OpenRequest) (account.Response, error)
	List(ctx context.Context) ([]account.Response, error)

	// Has to return apperrors.ErrAccountNotFound if account not exists
	Get(ctx context.Context, id int64) (account.Response, error)
}

type documentService interface {
	Save(ctx context.Context, req document.SaveRequest) (document.Response, error)
	List(ctx context.Context) ([]document.Response, error)

	// Has to return apperrors.ErrDocumentNotFound if document not exists
	Get(ctx context.Context, id int64) (document.Response, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

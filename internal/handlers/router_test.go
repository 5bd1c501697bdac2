package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/bankdemo/internal/handlers/middleware"
	"github.com/nkiryanov/bankdemo/internal/logger"
	"github.com/nkiryanov/bankdemo/internal/repository"
	"github.com/nkiryanov/bankdemo/internal/repository/memory"
	"github.com/nkiryanov/bankdemo/internal/repository/repotest"
	"github.com/nkiryanov/bankdemo/internal/service/account"
	"github.com/nkiryanov/bankdemo/internal/service/auth"
	"github.com/nkiryanov/bankdemo/internal/service/auth/tokenmanager"
	"github.com/nkiryanov/bankdemo/internal/service/document"
	"github.com/nkiryanov/bankdemo/internal/testutil"
)

type testServer struct {
	URL   string
	Clock *testutil.Clock
}

// Run http server with production services on top of given storage
func startServer(t *testing.T, storage repository.Storage) testServer {
	t.Helper()

	clock := testutil.NewClock(time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC))
	tokens, err := tokenmanager.New(tokenmanager.Config{SecretKey: "test-secret", Now: clock.Now})
	require.NoError(t, err, "token manager should be created without errors")

	router, err := NewRouter(Services{
		Auth:     auth.NewAuthService(tokens),
		Account:  account.NewService(storage),
		Document: document.NewService(storage),
		Storage:  storage,
	}, prometheus.NewRegistry(), logger.NewNoOpLogger())
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return testServer{URL: srv.URL, Clock: clock}
}

func do(t *testing.T, method string, url string, token string, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(b)
}

func issueToken(t *testing.T, srv testServer, body string) string {
	t.Helper()

	resp, respBody := do(t, http.MethodPost, srv.URL+"/auth/token", "", body)
	require.Equalf(t, http.StatusOK, resp.StatusCode, "token should be issued. Resp: %s", respBody)

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal([]byte(respBody), &token))
	require.Equal(t, "Bearer", token.TokenType)

	return token.AccessToken
}

func Test_AuthHandler(t *testing.T) {
	t.Parallel()

	srv := startServer(t, memory.New())

	t.Run("empty body uses default subject", func(t *testing.T) {
		token := issueToken(t, srv, "")

		require.NotEmpty(t, token)
	})

	t.Run("empty object", func(t *testing.T) {
		resp, body := do(t, http.MethodPost, srv.URL+"/auth/token", "", `{}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, `"token_type":"Bearer"`)
	})

	t.Run("with username", func(t *testing.T) {
		token := issueToken(t, srv, `{"username": "jane"}`)

		require.NotEmpty(t, token)
	})

	t.Run("broken json", func(t *testing.T) {
		resp, body := do(t, http.MethodPost, srv.URL+"/auth/token", "", `{"username":`)

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, body, "decoding_failed")
	})

	t.Run("protected routes need token", func(t *testing.T) {
		for _, route := range []struct{ method, path, body string }{
			{http.MethodPost, "/accounts", `{"ownerInfo": "Jane Doe", "initialDeposit": 500}`},
			{http.MethodGet, "/accounts", ""},
			{http.MethodGet, "/accounts/1", ""},
			{http.MethodPost, "/documents", `{"ownerName": "Jane Doe", "type": "ID_CARD", "path": "/docs/1.pdf"}`},
			{http.MethodGet, "/documents", ""},
			{http.MethodGet, "/documents/1", ""},
		} {
			t.Run(route.method+" "+route.path, func(t *testing.T) {
				resp, body := do(t, route.method, srv.URL+route.path, "", route.body)

				require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
				require.JSONEq(t, `{"error": "service_error", "message": "Unauthorized"}`, body)
			})
		}
	})

	t.Run("expired and forged tokens look the same", func(t *testing.T) {
		srv := startServer(t, memory.New())
		token := issueToken(t, srv, `{"username": "jane"}`)

		resp, forgedBody := do(t, http.MethodGet, srv.URL+"/accounts", token[:len(token)-4]+"AAAA", "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		srv.Clock.Advance(time.Hour)
		resp, expiredBody := do(t, http.MethodGet, srv.URL+"/accounts", token, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		require.Equal(t, forgedBody, expiredBody)
	})
}

func Test_AccountHandler(t *testing.T) {
	t.Parallel()

	t.Run("open jane doe account", func(t *testing.T) {
		srv := startServer(t, memory.New())
		token := issueToken(t, srv, "{}")

		resp, body := do(t, http.MethodPost, srv.URL+"/accounts", token, `{"ownerInfo": "Jane Doe", "initialDeposit": 500}`)

		require.Equalf(t, http.StatusCreated, resp.StatusCode, "Resp: %s", body)
		require.JSONEq(t, `{"id": 1, "owner": "Jane Doe", "balance": 500, "status": "PENDING"}`, body)
	})

	t.Run("client status and id ignored", func(t *testing.T) {
		srv := startServer(t, memory.New())
		token := issueToken(t, srv, "{}")

		resp, body := do(t, http.MethodPost, srv.URL+"/accounts", token,
			`{"id": 77, "ownerInfo": "Jane Doe", "initialDeposit": 10.5, "status": "ACTIVE"}`)

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.JSONEq(t, `{"id": 1, "owner": "Jane Doe", "balance": 10.5, "status": "PENDING"}`, body)
	})

	t.Run("validation", func(t *testing.T) {
		srv := startServer(t, memory.New())
		token := issueToken(t, srv, "{}")

		tests := []struct {
			name     string
			body     string
			expected string
		}{
			{
				name:     "owner missing",
				body:     `{"initialDeposit": 500}`,
				expected: `{"error": "validation_failed", "message": "Request validation failed", "fields": {"ownerInfo": "This field is required"}}`,
			},
			{
				name:     "negative deposit",
				body:     `{"ownerInfo": "Jane Doe", "initialDeposit": -1}`,
				expected: `{"error": "validation_failed", "message": "Request validation failed", "fields": {"initialDeposit": "Value must be greater than or equal to 0"}}`,
			},
			{
				name:     "tiny negative deposit",
				body:     `{"ownerInfo": "Jane Doe", "initialDeposit": -1e-400}`,
				expected: `{"error": "validation_failed", "message": "Request validation failed", "fields": {"initialDeposit": "Value must be greater than or equal to 0"}}`,
			},
			{
				name:     "huge deposit",
				body:     `{"ownerInfo": "Jane Doe", "initialDeposit": 1e400}`,
				expected: `{"error": "validation_failed", "message": "Request validation failed", "fields": {"initialDeposit": "Value must have at most 17 integer digits"}}`,
			},
			{
				name:     "three decimal places",
				body:     `{"ownerInfo": "Jane Doe", "initialDeposit": 0.005}`,
				expected: `{"error": "validation_failed", "message": "Request validation failed", "fields": {"initialDeposit": "Value must have at most 2 decimal places"}}`,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp, body := do(t, http.MethodPost, srv.URL+"/accounts", token, tt.body)

				require.Equal(t, http.StatusBadRequest, resp.StatusCode)
				require.JSONEq(t, tt.expected, body)
			})
		}

		// nothing saved on validation errors
		resp, body := do(t, http.MethodGet, srv.URL+"/accounts", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, `[]`, body)
	})

	t.Run("high precision deposit returned exactly", func(t *testing.T) {
		srv := startServer(t, memory.New())
		token := issueToken(t, srv, "{}")

		resp, body := do(t, http.MethodPost, srv.URL+"/accounts", token,
			`{"ownerInfo": "Jane Doe", "initialDeposit": 12345678901234567.89}`)
		require.Equalf(t, http.StatusCreated, resp.StatusCode, "Resp: %s", body)
		// JSONEq compares floats, so check raw digits
		require.Contains(t, body, `"balance":12345678901234567.89`)

		resp, body = do(t, http.MethodGet, srv.URL+"/accounts/1", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, `"balance":12345678901234567.89`)
	})

	t.Run("list and get", func(t *testing.T) {
		srv := startServer(t, memory.New())
		token := issueToken(t, srv, "{}")

		for _, owner := range []string{"Jane", "John"} {
			resp, _ := do(t, http.MethodPost, srv.URL+"/accounts", token, `{"ownerInfo": "`+owner+`", "initialDeposit": 1}`)
			require.Equal(t, http.StatusCreated, resp.StatusCode)
		}

		resp, body := do(t, http.MethodGet, srv.URL+"/accounts", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, `[
			{"id": 1, "owner": "Jane", "balance": 1, "status": "PENDING"},
			{"id": 2, "owner": "John", "balance": 1, "status": "PENDING"}
		]`, body)

		resp, body = do(t, http.MethodGet, srv.URL+"/accounts/2", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, `{"id": 2, "owner": "John", "balance": 1, "status": "PENDING"}`, body)

		resp, body = do(t, http.MethodGet, srv.URL+"/accounts/3", token, "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.JSONEq(t, `{"error": "service_error", "message": "Account not found"}`, body)

		resp, _ = do(t, http.MethodGet, srv.URL+"/accounts/abc", token, "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("storage failure hides details", func(t *testing.T) {
		srv := startServer(t, repotest.NewFailingStorage())
		token := issueToken(t, srv, "{}")

		resp, body := do(t, http.MethodPost, srv.URL+"/accounts", token, `{"ownerInfo": "Jane Doe", "initialDeposit": 500}`)

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		require.JSONEq(t, `{"error": "service_error", "message": "Internal server error"}`, body)
	})
}

func Test_DocumentHandler(t *testing.T) {
	t.Parallel()

	t.Run("save jane doe document", func(t *testing.T) {
		srv := startServer(t, memory.New())
		token := issueToken(t, srv, "{}")

		resp, body := do(t, http.MethodPost, srv.URL+"/documents", token, `{"ownerName": "Jane Doe", "type": "ID_CARD", "path": "/docs/1.pdf"}`)

		require.Equalf(t, http.StatusCreated, resp.StatusCode, "Resp: %s", body)
		require.JSONEq(t, `{"id": 1, "ownerName": "Jane Doe", "type": "ID_CARD", "path": "/docs/1.pdf"}`, body)

		resp, body = do(t, http.MethodGet, srv.URL+"/documents", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, `[{"id": 1, "ownerName": "Jane Doe", "type": "ID_CARD", "path": "/docs/1.pdf"}]`, body)

		resp, _ = do(t, http.MethodGet, srv.URL+"/documents/1", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = do(t, http.MethodGet, srv.URL+"/documents/2", token, "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("all fields required", func(t *testing.T) {
		srv := startServer(t, memory.New())
		token := issueToken(t, srv, "{}")

		resp, body := do(t, http.MethodPost, srv.URL+"/documents", token, `{"ownerName": "", "type": "ID_CARD"}`)

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.JSONEq(t, `{
			"error": "validation_failed",
			"message": "Request validation failed",
			"fields": {"ownerName": "This field is required", "path": "This field is required"}
		}`, body)
	})
}

func Test_Infrastructure(t *testing.T) {
	t.Parallel()

	t.Run("health ok", func(t *testing.T) {
		srv := startServer(t, memory.New())

		resp, body := do(t, http.MethodGet, srv.URL+"/health", "", "")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, `{"status": "ok"}`, body)
	})

	t.Run("health storage down", func(t *testing.T) {
		srv := startServer(t, repotest.NewFailingStorage())

		resp, body := do(t, http.MethodGet, srv.URL+"/health", "", "")

		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		require.JSONEq(t, `{"status": "unavailable"}`, body)
	})

	t.Run("request id returned", func(t *testing.T) {
		srv := startServer(t, memory.New())

		resp, _ := do(t, http.MethodGet, srv.URL+"/health", "", "")

		require.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
	})

	t.Run("metrics exposed", func(t *testing.T) {
		srv := startServer(t, memory.New())
		_, _ = do(t, http.MethodGet, srv.URL+"/health", "", "")

		resp, body := do(t, http.MethodGet, srv.URL+"/metrics", "", "")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, `bankdemo_http_requests_total{method="GET",path="GET /health",status="200"} 1`)
	})
}

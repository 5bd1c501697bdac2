package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/nkiryanov/bankdemo/internal/handlers/render"
	"github.com/nkiryanov/bankdemo/internal/logger"
)

const tokenTypeBearer = "Bearer"

func handleIssueToken(authService authService, l logger.Logger) http.Handler {
	type request struct {
		Username string `json:"username"`
	}
	type response struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Body is optional here, so empty one is not an error
		var req request
		r.Body = http.MaxBytesReader(w, r.Body, 4096)
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil && !errors.Is(err, io.EOF) {
			render.DecodeError(w, err)
			return
		}

		token, err := authService.IssueToken(r.Context(), req.Username)
		if err != nil {
			l.Error("Failed to issue token", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, response{AccessToken: token.Value, TokenType: tokenTypeBearer})
	})
}

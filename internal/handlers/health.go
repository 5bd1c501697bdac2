package handlers

import (
	"net/http"

	"github.com/nkiryanov/bankdemo/internal/handlers/render"
	"github.com/nkiryanov/bankdemo/internal/logger"
)

func handleHealth(storage pinger, l logger.Logger) http.Handler {
	type response struct {
		Status string `json:"status"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := storage.Ping(r.Context()); err != nil {
			l.Warn("Storage is not available", "error", err)
			render.JSONWithStatus(w, response{Status: "unavailable"}, http.StatusServiceUnavailable)
			return
		}

		render.JSON(w, response{Status: "ok"})
	})
}

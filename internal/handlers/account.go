package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/nkiryanov/bankdemo/internal/apperrors"
	"github.com/nkiryanov/bankdemo/internal/handlers/render"
	"github.com/nkiryanov/bankdemo/internal/handlers/userctx"
	"github.com/nkiryanov/bankdemo/internal/logger"
	"github.com/nkiryanov/bankdemo/internal/service/account"
)

type accountResponse struct {
	ID      int64       `json:"id"`
	Owner   string      `json:"owner"`
	Balance json.Number `json:"balance"` // exact digits, not a float
	Status  string      `json:"status"`
}

func toAccountResponse(a account.Response) accountResponse {
	return accountResponse{
		ID:      a.ID,
		Owner:   a.Owner,
		Balance: json.Number(a.Balance.String()),
		Status:  string(a.Status),
	}
}

func handleOpenAccount(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[account.OpenRequest](w, r)
		if err != nil {
			return
		}

		opened, err := accountService.Open(r.Context(), req)
		if err != nil {
			serviceError(w, r, err, l)
			return
		}

		subject, _ := userctx.FromContext(r.Context())
		l.Info("Account opened", "id", opened.ID, "subject", subject)

		render.JSONWithStatus(w, toAccountResponse(opened), http.StatusCreated)
	})
}

func handleListAccounts(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accounts, err := accountService.List(r.Context())
		if err != nil {
			serviceError(w, r, err, l)
			return
		}

		res := make([]accountResponse, 0, len(accounts))
		for _, a := range accounts {
			res = append(res, toAccountResponse(a))
		}
		render.JSON(w, res)
	})
}

func handleGetAccount(accountService accountService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		a, err := accountService.Get(r.Context(), id)
		if err != nil {
			serviceError(w, r, err, l)
			return
		}

		render.JSON(w, toAccountResponse(a))
	})
}

// Parse positive {id} path value, write 400 if it is not
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		render.ServiceError(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// Map service error to response, internals are logged and never returned
func serviceError(w http.ResponseWriter, r *http.Request, err error, l logger.Logger) {
	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound):
		render.ServiceError(w, "Account not found", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrDocumentNotFound):
		render.ServiceError(w, "Document not found", http.StatusNotFound)
	default:
		subject, _ := userctx.FromContext(r.Context())
		l.Error("Request failed", "uri", r.RequestURI, "subject", subject, "error", err)
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
}

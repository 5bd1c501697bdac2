package handlers

import (
	"net/http"

	"github.com/nkiryanov/bankdemo/internal/handlers/render"
	"github.com/nkiryanov/bankdemo/internal/handlers/userctx"
	"github.com/nkiryanov/bankdemo/internal/logger"
	"github.com/nkiryanov/bankdemo/internal/service/document"
)

type documentResponse struct {
	ID        int64  `json:"id"`
	OwnerName string `json:"ownerName"`
	Type      string `json:"type"`
	Path      string `json:"path"`
}

func toDocumentResponse(d document.Response) documentResponse {
	return documentResponse(d)
}

func handleSaveDocument(documentService documentService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[document.SaveRequest](w, r)
		if err != nil {
			return
		}

		saved, err := documentService.Save(r.Context(), req)
		if err != nil {
			serviceError(w, r, err, l)
			return
		}

		subject, _ := userctx.FromContext(r.Context())
		l.Info("Document saved", "id", saved.ID, "subject", subject)

		render.JSONWithStatus(w, toDocumentResponse(saved), http.StatusCreated)
	})
}

func handleListDocuments(documentService documentService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		docs, err := documentService.List(r.Context())
		if err != nil {
			serviceError(w, r, err, l)
			return
		}

		res := make([]documentResponse, 0, len(docs))
		for _, d := range docs {
			res = append(res, toDocumentResponse(d))
		}
		render.JSON(w, res)
	})
}

func handleGetDocument(documentService documentService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		d, err := documentService.Get(r.Context(), id)
		if err != nil {
			serviceError(w, r, err, l)
			return
		}

		render.JSON(w, toDocumentResponse(d))
	})
}

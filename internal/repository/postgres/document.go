package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nkiryanov/bankdemo/internal/apperrors"
	"github.com/nkiryanov/bankdemo/internal/models"
)

type DocumentRepo struct {
	DB DBTX
}

const insertDocument = `-- name: InsertDocument
INSERT INTO document_files (owner_name, type, path)
VALUES ($1, $2, $3)
RETURNING id, owner_name, type, path
`

const updateDocument = `-- name: UpdateDocument
UPDATE document_files
SET owner_name = $2, type = $3, path = $4
WHERE id = $1
RETURNING id, owner_name, type, path
`

func (r *DocumentRepo) Save(ctx context.Context, d models.DocumentFile) (models.DocumentFile, error) {
	var rows pgx.Rows
	if d.ID == 0 {
		rows, _ = r.DB.Query(ctx, insertDocument, d.OwnerName, d.Type, d.Path)
	} else {
		rows, _ = r.DB.Query(ctx, updateDocument, d.ID, d.OwnerName, d.Type, d.Path)
	}

	saved, err := pgx.CollectOneRow(rows, rowToDocument)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return saved, apperrors.ErrDocumentNotFound
	case err != nil:
		return saved, dbError(err)
	}

	return saved, nil
}

const getDocument = `-- name: GetDocument
SELECT id, owner_name, type, path FROM document_files WHERE id = $1
`

func (r *DocumentRepo) FindByID(ctx context.Context, id int64) (models.DocumentFile, error) {
	rows, _ := r.DB.Query(ctx, getDocument, id)
	d, err := pgx.CollectOneRow(rows, rowToDocument)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return d, apperrors.ErrDocumentNotFound
	case err != nil:
		return d, dbError(err)
	}

	return d, nil
}

const listDocuments = `-- name: ListDocuments
SELECT id, owner_name, type, path FROM document_files ORDER BY id
`

func (r *DocumentRepo) FindAll(ctx context.Context) ([]models.DocumentFile, error) {
	rows, _ := r.DB.Query(ctx, listDocuments)
	docs, err := pgx.CollectRows(rows, rowToDocument)
	if err != nil {
		return nil, dbError(err)
	}

	return docs, nil
}

func rowToDocument(row pgx.CollectableRow) (models.DocumentFile, error) {
	var d models.DocumentFile
	err := row.Scan(&d.ID, &d.OwnerName, &d.Type, &d.Path)
	return d, err
}

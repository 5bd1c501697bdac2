package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nkiryanov/bankdemo/internal/apperrors"
	"github.com/nkiryanov/bankdemo/internal/models"
)

type AccountRepo struct {
	DB DBTX
}

const insertAccount = `-- name: InsertAccount
INSERT INTO bank_accounts (owner, balance, status)
VALUES ($1, $2, $3)
RETURNING id, owner, balance, status
`

const updateAccount = `-- name: UpdateAccount
UPDATE bank_accounts
SET owner = $2, balance = $3, status = $4
WHERE id = $1
RETURNING id, owner, balance, status
`

func (r *AccountRepo) Save(ctx context.Context, a models.BankAccount) (models.BankAccount, error) {
	var rows pgx.Rows
	if a.ID == 0 {
		rows, _ = r.DB.Query(ctx, insertAccount, a.Owner, a.Balance, a.Status)
	} else {
		rows, _ = r.DB.Query(ctx, updateAccount, a.ID, a.Owner, a.Balance, a.Status)
	}

	saved, err := pgx.CollectOneRow(rows, rowToAccount)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return saved, apperrors.ErrAccountNotFound
	case err != nil:
		return saved, dbError(err)
	}

	return saved, nil
}

const getAccount = `-- name: GetAccount
SELECT id, owner, balance, status FROM bank_accounts WHERE id = $1
`

func (r *AccountRepo) FindByID(ctx context.Context, id int64) (models.BankAccount, error) {
	rows, _ := r.DB.Query(ctx, getAccount, id)
	a, err := pgx.CollectOneRow(rows, rowToAccount)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return a, apperrors.ErrAccountNotFound
	case err != nil:
		return a, dbError(err)
	}

	return a, nil
}

const listAccounts = `-- name: ListAccounts
SELECT id, owner, balance, status FROM bank_accounts ORDER BY id
`

func (r *AccountRepo) FindAll(ctx context.Context) ([]models.BankAccount, error) {
	rows, _ := r.DB.Query(ctx, listAccounts)
	accounts, err := pgx.CollectRows(rows, rowToAccount)
	if err != nil {
		return nil, dbError(err)
	}

	return accounts, nil
}

func rowToAccount(row pgx.CollectableRow) (models.BankAccount, error) {
	var a models.BankAccount
	err := row.Scan(&a.ID, &a.Owner, &a.Balance, &a.Status)
	return a, err
}

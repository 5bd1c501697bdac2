package models

import (
	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountPending AccountStatus = "PENDING"
	AccountActive  AccountStatus = "ACTIVE"
	AccountClosed  AccountStatus = "CLOSED"
)

type BankAccount struct {
	ID      int64 // zero until the account is persisted
	Owner   string
	Balance decimal.Decimal
	Status  AccountStatus
}

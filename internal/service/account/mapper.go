package account

import (
	"github.com/shopspring/decimal"

	"github.com/nkiryanov/bankdemo/internal/models"
)

// Open account request
// ID and Status may be sent by client but are never trusted
// InitialDeposit must fit NUMERIC(19, 2) so every storage keeps it exactly
type OpenRequest struct {
	ID             int64           `json:"id,omitempty"`
	OwnerInfo      string          `json:"ownerInfo" validate:"required"`
	InitialDeposit decimal.Decimal `json:"initialDeposit" validate:"decimal_gte=0,decimal_scale=2,decimal_int_digits=17"`
	Status         string          `json:"status,omitempty"`
}

type Response struct {
	ID      int64
	Owner   string
	Balance decimal.Decimal
	Status  models.AccountStatus
}

// ToEntity builds new account from request
// Id is assigned by storage, every new account is PENDING and initial deposit becomes balance
func ToEntity(req OpenRequest) models.BankAccount {
	return models.BankAccount{
		Owner:   req.OwnerInfo,
		Balance: req.InitialDeposit,
		Status:  models.AccountPending,
	}
}

func ToResponse(a models.BankAccount) Response {
	return Response{
		ID:      a.ID,
		Owner:   a.Owner,
		Balance: a.Balance,
		Status:  a.Status,
	}
}

package account

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/bankdemo/internal/models"
)

func TestToEntity(t *testing.T) {
	tests := []struct {
		name string
		req  OpenRequest
		want models.BankAccount
	}{
		{
			name: "plain request",
			req:  OpenRequest{OwnerInfo: "Jane Doe", InitialDeposit: decimal.NewFromInt(500)},
			want: models.BankAccount{Owner: "Jane Doe", Balance: decimal.NewFromInt(500), Status: models.AccountPending},
		},
		{
			name: "client id ignored",
			req:  OpenRequest{ID: 42, OwnerInfo: "Jane Doe", InitialDeposit: decimal.NewFromInt(1)},
			want: models.BankAccount{Owner: "Jane Doe", Balance: decimal.NewFromInt(1), Status: models.AccountPending},
		},
		{
			name: "client status ignored",
			req:  OpenRequest{OwnerInfo: "Jane Doe", InitialDeposit: decimal.Zero, Status: "ACTIVE"},
			want: models.BankAccount{Owner: "Jane Doe", Balance: decimal.Zero, Status: models.AccountPending},
		},
		{
			name: "fractional deposit kept exactly",
			req:  OpenRequest{OwnerInfo: "Jane Doe", InitialDeposit: decimal.RequireFromString("0.10"), Status: "CLOSED"},
			want: models.BankAccount{Owner: "Jane Doe", Balance: decimal.RequireFromString("0.10"), Status: models.AccountPending},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToEntity(tt.req)

			require.Zero(t, got.ID, "id must be assigned by storage")
			require.Equal(t, tt.want.Owner, got.Owner)
			require.True(t, tt.want.Balance.Equal(got.Balance), "balance must equal initial deposit")
			require.Equal(t, models.AccountPending, got.Status)
		})
	}
}

func TestToResponse(t *testing.T) {
	a := models.BankAccount{ID: 7, Owner: "Jane Doe", Balance: decimal.NewFromInt(500), Status: models.AccountActive}

	require.Equal(t, Response{ID: 7, Owner: "Jane Doe", Balance: decimal.NewFromInt(500), Status: models.AccountActive}, ToResponse(a))
}

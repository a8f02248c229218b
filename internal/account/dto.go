// AngelaMos | 2026
// dto.go

package account

import (
	"time"
)

type CreateAccountRequest struct {
	BankCode      string  `json:"bank_code"      validate:"required,bank_code"`
	AccountNumber string  `json:"account_number" validate:"required,min=4,max=32"`
	AccountType   string  `json:"account_type"   validate:"required,oneof=CHECKING SAVING LOAN PENSION TRUST FOREIGN_CURRENCY IRP STOCK"`
	Balance       float64 `json:"balance"`
}

type UpdateAccountRequest struct {
	BankCode    string  `json:"bank_code"    validate:"required,bank_code"`
	AccountType string  `json:"account_type" validate:"required,oneof=CHECKING SAVING LOAN PENSION TRUST FOREIGN_CURRENCY IRP STOCK"`
	Balance     float64 `json:"balance"`
}

type AccountResponse struct {
	ID            string    `json:"id"`
	BankCode      string    `json:"bank_code"`
	AccountNumber string    `json:"account_number"`
	AccountType   string    `json:"account_type"`
	Balance       float64   `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type AccountDetailResponse struct {
	AccountResponse
	Transactions []Entry `json:"transactions"`
}

func ToAccountResponse(a *Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		BankCode:      a.BankCode,
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func ToAccountResponseList(accounts []Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, ToAccountResponse(&a))
	}
	return responses
}

// ToAccountDetailResponse masks the account number.
func ToAccountDetailResponse(a *Account, entries []Entry) AccountDetailResponse {
	resp := AccountDetailResponse{
		AccountResponse: ToAccountResponse(a),
		Transactions:    entries,
	}
	resp.AccountNumber = a.MaskedNumber()
	if resp.Transactions == nil {
		resp.Transactions = []Entry{}
	}
	return resp
}

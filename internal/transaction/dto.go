// AngelaMos | 2026
// dto.go

package transaction

import (
	"time"
)

type CreateTransactionRequest struct {
	AccountID         string  `json:"account_id"         validate:"required"`
	TransactionType   string  `json:"transaction_type"   validate:"required,oneof=DEPOSIT WITHDRAW"`
	TransactionMethod string  `json:"transaction_method" validate:"required,oneof=ATM TRANSFER AUTOMATIC_TRANSFER CARD INTEREST"`
	Amount            float64 `json:"amount"             validate:"gt=0"`
	Description       *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

type UpdateTransactionRequest struct {
	TransactionType   *string  `json:"transaction_type,omitempty"   validate:"omitempty,oneof=DEPOSIT WITHDRAW"`
	TransactionMethod *string  `json:"transaction_method,omitempty" validate:"omitempty,oneof=ATM TRANSFER AUTOMATIC_TRANSFER CARD INTEREST"`
	Amount            *float64 `json:"amount,omitempty"             validate:"omitempty,gt=0"`
	Description       *string  `json:"description,omitempty"        validate:"omitempty,max=255"`
}

type ListParams struct {
	StartDate       string
	EndDate         string
	TransactionType string
}

type TransactionResponse struct {
	ID                string    `json:"id"`
	AccountID         string    `json:"account_id"`
	TransactionType   string    `json:"transaction_type"`
	TransactionMethod string    `json:"transaction_method"`
	Amount            float64   `json:"amount"`
	Description       *string   `json:"description,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func ToTransactionResponse(t *Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                t.ID,
		AccountID:         t.AccountID,
		TransactionType:   t.TransactionType,
		TransactionMethod: t.TransactionMethod,
		Amount:            t.Amount,
		Description:       t.Description,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func ToTransactionResponseList(txs []Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		responses = append(responses, ToTransactionResponse(&t))
	}
	return responses
}

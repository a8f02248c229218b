// AngelaMos | 2026
// entity.go

package transaction

import (
	"time"
)

const (
	TypeDeposit  = "DEPOSIT"
	TypeWithdraw = "WITHDRAW"
)

const (
	MethodATM               = "ATM"
	MethodTransfer          = "TRANSFER"
	MethodAutomaticTransfer = "AUTOMATIC_TRANSFER"
	MethodCard              = "CARD"
	MethodInterest          = "INTEREST"
)

type Transaction struct {
	ID                string    `db:"id"`
	AccountID         string    `db:"account_id"`
	TransactionType   string    `db:"transaction_type"`
	TransactionMethod string    `db:"transaction_method"`
	Amount            float64   `db:"amount"`
	Description       *string   `db:"description"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// Filter narrows a listing to one user's accounts. From is inclusive and
// To is exclusive.
type Filter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Type   string
}

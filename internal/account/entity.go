// AngelaMos | 2026
// entity.go

package account

import (
	"slices"
	"time"
)

const (
	TypeChecking        = "CHECKING"
	TypeSaving          = "SAVING"
	TypeLoan            = "LOAN"
	TypePension         = "PENSION"
	TypeTrust           = "TRUST"
	TypeForeignCurrency = "FOREIGN_CURRENCY"
	TypeIRP             = "IRP"
	TypeStock           = "STOCK"
)

// bankCodes are the Korean financial institution codes an account may be
// opened with.
var bankCodes = []string{
	"000", "001", "002", "003", "004", "005", "007", "008", "011", "012",
	"020", "023", "027", "031", "032", "034", "035", "037", "039", "045",
	"048", "050", "051", "052", "054", "055", "056", "057", "058", "059",
	"060", "061", "062", "063", "064", "065", "066", "071", "076", "077",
	"081", "088", "089", "090", "092", "093", "094", "095", "096", "099",
	"102", "103", "104", "105", "106", "209", "218", "221", "222", "223",
	"224", "225", "226", "227", "230", "238", "240", "243", "261", "262",
	"263", "264", "265", "266", "267", "269", "270", "278", "279", "280",
	"287", "289", "290", "291", "292", "293", "294", "295", "296", "297",
	"298",
}

func IsBankCode(code string) bool {
	return slices.Contains(bankCodes, code)
}

type Account struct {
	ID            string     `db:"id"`
	UserID        string     `db:"user_id"`
	BankCode      string     `db:"bank_code"`
	AccountNumber string     `db:"account_number"`
	AccountType   string     `db:"account_type"`
	Balance       float64    `db:"balance"`
	IsActive      bool       `db:"is_active"`
	IsDeleted     bool       `db:"is_deleted"`
	DeletedAt     *time.Time `db:"deleted_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// MaskedNumber keeps only the last four digits.
func (a *Account) MaskedNumber() string {
	n := a.AccountNumber
	if len(n) > 4 {
		n = n[len(n)-4:]
	}
	return "***-****-" + n
}

// Entry is a transaction as shown on the account detail view.
type Entry struct {
	ID                string    `db:"id"                 json:"id"`
	TransactionType   string    `db:"transaction_type"   json:"transaction_type"`
	TransactionMethod string    `db:"transaction_method" json:"transaction_method"`
	Amount            float64   `db:"amount"             json:"amount"`
	Description       *string   `db:"description"        json:"description,omitempty"`
	CreatedAt         time.Time `db:"created_at"         json:"created_at"`
}

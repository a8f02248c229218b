// AngelaMos | 2026
// entity.go

package analysis

import (
	"time"
)

const (
	TypeDaily   = "DAILY"
	TypeWeekly  = "WEEKLY"
	TypeMonthly = "MONTHLY"
	TypeYearly  = "YEARLY"
)

const (
	AboutTotalSpending = "TOTAL_SPENDING"
	AboutTotalIncome   = "TOTAL_INCOME"
)

type Analysis struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	AnalysisType  string    `db:"analysis_type"`
	AnalysisAbout string    `db:"analysis_about"`
	Amount        float64   `db:"amount"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// PeriodStart returns the start of the window of the given type that ends
// at now.
func PeriodStart(analysisType string, now time.Time) (time.Time, bool) {
	switch analysisType {
	case TypeDaily:
		return now.AddDate(0, 0, -1), true
	case TypeWeekly:
		return now.AddDate(0, 0, -7), true
	case TypeMonthly:
		return now.AddDate(0, -1, 0), true
	case TypeYearly:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

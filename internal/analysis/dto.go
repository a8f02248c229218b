// AngelaMos | 2026
// dto.go

package analysis

import (
	"time"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type CreateAnalysisRequest struct {
	AnalysisType  string  `json:"analysis_type"  validate:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	AnalysisAbout string  `json:"analysis_about" validate:"required,oneof=TOTAL_SPENDING TOTAL_INCOME"`
	Amount        float64 `json:"amount"         validate:"gte=0"`
}

type GenerateAnalysisRequest struct {
	AnalysisType  string `json:"analysis_type"  validate:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	AnalysisAbout string `json:"analysis_about" validate:"required,oneof=TOTAL_SPENDING TOTAL_INCOME"`
}

type ListParams struct {
	Skip  int
	Limit int
}

func (p *ListParams) Normalize() {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
}

type AnalysisResponse struct {
	ID            string    `json:"id"`
	AnalysisType  string    `json:"analysis_type"`
	AnalysisAbout string    `json:"analysis_about"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToAnalysisResponse(a *Analysis) AnalysisResponse {
	return AnalysisResponse{
		ID:            a.ID,
		AnalysisType:  a.AnalysisType,
		AnalysisAbout: a.AnalysisAbout,
		Amount:        a.Amount,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func ToAnalysisResponseList(items []Analysis) []AnalysisResponse {
	responses := make([]AnalysisResponse, 0, len(items))
	for _, a := range items {
		responses = append(responses, ToAnalysisResponse(&a))
	}
	return responses
}

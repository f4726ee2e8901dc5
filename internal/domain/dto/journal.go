package dto

import (
	"time"

	"github.com/guttosm/botjournal/internal/domain/models"
)

// IngestRequest carries a raw bot log submitted over HTTP.
type IngestRequest struct {
	Text string         `json:"text" binding:"required"`
	Kind models.DayKind `json:"kind" example:"base"`
}

// IngestResponse is returned after a log was parsed and stored.
type IngestResponse struct {
	Date       string             `json:"date" example:"2025-03-14"`
	Kind       models.DayKind     `json:"kind" example:"base"`
	TradeCount int                `json:"trade_count" example:"12"`
	Analysis   models.DayAnalysis `json:"analysis"`
}

// CompareRequest holds two raw log texts to diff without storing them.
type CompareRequest struct {
	Base    string `json:"base" binding:"required"`
	Compare string `json:"compare" binding:"required"`
}

// DaySummaryResponse is one entry of GET /api/v1/days.
type DaySummaryResponse struct {
	Date       string         `json:"date" example:"2025-03-14"`
	Kind       models.DayKind `json:"kind" example:"base"`
	TradeCount int            `json:"trade_count" example:"12"`
	TotalPnL   float64        `json:"total_pnl" example:"1250.5"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// DiffResponse wraps a diff with the date it was computed for.
type DiffResponse struct {
	Date       string            `json:"date" example:"2025-03-14"`
	HasChanges bool              `json:"has_changes"`
	Diff       models.DiffResult `json:"diff"`
}

// NewDaySummaryResponses converts stored summaries to their wire form.
func NewDaySummaryResponses(in []models.DaySummary) []DaySummaryResponse {
	out := make([]DaySummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, DaySummaryResponse{
			Date:       s.Date.Format("2006-01-02"),
			Kind:       s.Kind,
			TradeCount: s.TradeCount,
			TotalPnL:   s.TotalPnL,
			UpdatedAt:  s.UpdatedAt,
		})
	}
	return out
}

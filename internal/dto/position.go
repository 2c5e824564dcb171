package dto

import (
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BucketTotalsResponse holds the per-currency available/pending sums of one method bucket.
type BucketTotalsResponse struct {
	Available map[domain.CurrencyCode]decimal.Decimal `json:"available"`
	Pending   map[domain.CurrencyCode]decimal.Decimal `json:"pending"`
}

// PositionReportResponse defines the structure for API responses containing
// the multi-currency cash position.
type PositionReportResponse struct {
	AsOf         time.Time                                    `json:"asOf"`
	Buckets      map[domain.MethodBucket]BucketTotalsResponse `json:"buckets"`
	AvailableTRY decimal.Decimal                              `json:"availableTRY"`
	PendingTRY   decimal.Decimal                              `json:"pendingTRY"`
	TotalTRY     decimal.Decimal                              `json:"totalTRY"`
	RatesUsed    map[domain.CurrencyCode]decimal.Decimal      `json:"ratesUsed"`
}

// ToPositionReportResponse converts a domain.PositionReport to its response DTO.
func ToPositionReportResponse(report *domain.PositionReport) PositionReportResponse {
	buckets := make(map[domain.MethodBucket]BucketTotalsResponse, len(report.Buckets))
	for bucket, totals := range report.Buckets {
		buckets[bucket] = BucketTotalsResponse{
			Available: totals.Available,
			Pending:   totals.Pending,
		}
	}
	return PositionReportResponse{
		AsOf:         report.AsOf,
		Buckets:      buckets,
		AvailableTRY: report.AvailableTRY,
		PendingTRY:   report.PendingTRY,
		TotalTRY:     report.TotalTRY,
		RatesUsed:    report.RatesUsed,
	}
}

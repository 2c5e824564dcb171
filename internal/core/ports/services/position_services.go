package services

import (
	"context"
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
)

// PositionSvcFacade composes the ledger store, the rate snapshot and the
// cash-position fold into the report the presentation layer consumes.
type PositionSvcFacade interface {
	// GetPosition computes the multi-currency cash position at the given date.
	GetPosition(ctx context.Context, asOf time.Time) (*domain.PositionReport, error)
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anatoliatours/cashledger/internal/core/domain"
	portsrepo "github.com/anatoliatours/cashledger/internal/core/ports/repositories"
	portssvc "github.com/anatoliatours/cashledger/internal/core/ports/services"
	"github.com/anatoliatours/cashledger/internal/middleware"
	"github.com/anatoliatours/cashledger/internal/utils/cashcalc"
)

// positionService is the composition root of the cash-position engine: it
// pulls the payment history, takes a rate snapshot and runs the pure fold.
type positionService struct {
	paymentRepo portsrepo.PaymentReader
	rateSvc     portssvc.RateSvcFacade
}

// NewPositionService creates a new PositionService.
func NewPositionService(paymentRepo portsrepo.PaymentReader, rateSvc portssvc.RateSvcFacade) portssvc.PositionSvcFacade {
	return &positionService{
		paymentRepo: paymentRepo,
		rateSvc:     rateSvc,
	}
}

var _ portssvc.PositionSvcFacade = (*positionService)(nil)

// GetPosition computes the multi-currency cash position at the given date.
// The rate snapshot is taken once before the fold, so a concurrent refresh
// can never be observed mid-computation.
func (s *positionService) GetPosition(ctx context.Context, asOf time.Time) (*domain.PositionReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	records, err := s.paymentRepo.ListPaymentsUpTo(ctx, asOf)
	if err != nil {
		logger.Error("Failed to load payments for position", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load payments for position: %w", err)
	}

	rates := s.rateSvc.Snapshot()

	report, err := cashcalc.Aggregate(records, rates, asOf)
	if err != nil {
		logger.Error("Cash position fold failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to aggregate cash position: %w", err)
	}

	logger.Debug("Cash position computed",
		slog.Time("as_of", asOf),
		slog.Int("records", len(records)),
	)
	return &report, nil
}

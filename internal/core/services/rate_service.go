package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anatoliatours/cashledger/internal/apperrors"
	"github.com/anatoliatours/cashledger/internal/core/domain"
	portsrepo "github.com/anatoliatours/cashledger/internal/core/ports/repositories"
	portssvc "github.com/anatoliatours/cashledger/internal/core/ports/services"
	"github.com/anatoliatours/cashledger/internal/dto"
	"github.com/anatoliatours/cashledger/internal/middleware"
	"github.com/shopspring/decimal"
)

// rateRefreshUser is the audit identity recorded for scheduled refreshes.
const rateRefreshUser = "rate-refresh"

// rateService owns the current rate-table snapshot. The snapshot is swapped
// whole under a write lock; readers always get an independent copy, so no
// computation can ever observe a refresh mid-flight.
type rateService struct {
	mu       sync.RWMutex
	table    domain.RateTable
	source   portssvc.RateSource
	rateRepo portsrepo.RateRepositoryFacade
}

// NewRateService creates a new RateService, seeding the snapshot from the last
// persisted rate table when one exists.
func NewRateService(ctx context.Context, source portssvc.RateSource, rateRepo portsrepo.RateRepositoryFacade) portssvc.RateSvcFacade {
	s := &rateService{
		table:    domain.RateTable{Rates: map[domain.CurrencyCode]decimal.Decimal{}},
		source:   source,
		rateRepo: rateRepo,
	}

	if rateRepo != nil {
		persisted, err := rateRepo.LatestRates(ctx)
		switch {
		case err == nil:
			s.table = persisted.Clone()
		case !errors.Is(err, apperrors.ErrNotFound):
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to load persisted rate table", slog.String("error", err.Error()))
		}
	}
	return s
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// Snapshot returns an independent copy of the current rate table.
func (s *rateService) Snapshot() domain.RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

// Refresh pulls fresh rates from the external source and swaps the snapshot.
// Called on the refresh schedule and at startup.
func (s *rateService) Refresh(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	fetched, err := s.source.FetchRates(ctx)
	if err != nil {
		logger.Error("Rate source fetch failed", slog.String("error", err.Error()))
		return fmt.Errorf("failed to fetch rates: %w", err)
	}

	table, err := buildRateTable(fetched)
	if err != nil {
		return err
	}

	if s.rateRepo != nil {
		if err := s.rateRepo.SaveRates(ctx, table, rateRefreshUser); err != nil {
			// A stale persisted table only matters after a restart; keep serving.
			logger.Warn("Failed to persist refreshed rate table", slog.String("error", err.Error()))
		}
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	logger.Info("Rate table refreshed", slog.Int("currencies", len(table.Rates)))
	return nil
}

// SetRates replaces the snapshot with manually supplied rates.
func (s *rateService) SetRates(ctx context.Context, req dto.UpdateRatesRequest, userID string) (domain.RateTable, error) {
	table, err := buildRateTable(req.Rates)
	if err != nil {
		return domain.RateTable{}, err
	}

	if s.rateRepo != nil {
		if err := s.rateRepo.SaveRates(ctx, table, userID); err != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to persist rate table", slog.String("error", err.Error()))
			return domain.RateTable{}, fmt.Errorf("failed to persist rates: %w", err)
		}
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	middleware.GetLoggerFromCtx(ctx).Info("Rate table set manually", slog.String("user_id", userID))
	return table.Clone(), nil
}

// buildRateTable validates raw rates and stamps a fresh snapshot.
// TRY is pegged at 1 and must not be supplied.
func buildRateTable(rates map[domain.CurrencyCode]decimal.Decimal) (domain.RateTable, error) {
	cleaned := make(map[domain.CurrencyCode]decimal.Decimal, len(rates))
	for code, rate := range rates {
		if code == domain.TRY {
			return domain.RateTable{}, fmt.Errorf("%w: TRY is the base currency and cannot carry a rate", apperrors.ErrValidation)
		}
		if !code.IsSupported() {
			return domain.RateTable{}, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, code)
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			return domain.RateTable{}, fmt.Errorf("%w: rate for %s must be positive", apperrors.ErrValidation, code)
		}
		cleaned[code] = rate
	}
	return domain.RateTable{Rates: cleaned, FetchedAt: time.Now().UTC()}, nil
}

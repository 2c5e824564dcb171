package services

import (
	"context"

	portsrepo "github.com/anatoliatours/cashledger/internal/core/ports/repositories"
	portssvc "github.com/anatoliatours/cashledger/internal/core/ports/services"
)

// NewServiceContainer wires every application service with its dependencies.
func NewServiceContainer(ctx context.Context, repos *portsrepo.RepositoryProvider, rateSource portssvc.RateSource) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Payment = NewPaymentService(repos.PaymentRepo, container.Account)
	container.Exchange = NewExchangeService(repos.AccountRepo, repos.ExchangeRepo)
	container.Transfer = NewTransferService(repos.AccountRepo, repos.TransferRepo)
	container.Rate = NewRateService(ctx, rateSource, repos.RateRepo)
	container.Position = NewPositionService(repos.PaymentRepo, container.Rate)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.AccountSvcFacade  = (*accountService)(nil)
	_ portssvc.PaymentSvcFacade  = (*paymentService)(nil)
	_ portssvc.ExchangeSvcFacade = (*exchangeService)(nil)
	_ portssvc.TransferSvcFacade = (*transferService)(nil)
	_ portssvc.RateSvcFacade     = (*rateService)(nil)
	_ portssvc.PositionSvcFacade = (*positionService)(nil)
)

package commands

import (
	"context"

	"agrirent/internal/pkg/clock"
	"agrirent/internal/usecase/shared"
)

type SweeperCommands interface {
	// SweepExpiredHolds releases every payment hold past its expiry in one
	// bulk update and reports how many were released. Safe to run
	// concurrently with ConfirmPayment: both guard on the hold status, so
	// each hold is settled exactly once.
	SweepExpiredHolds(ctx context.Context) (int64, error)
}

type sweeperUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSweeperUseCase(uow shared.UnitOfWork, clk clock.Clock) SweeperCommands {
	return &sweeperUseCaseImpl{uow: uow, clock: clk}
}

func (uc *sweeperUseCaseImpl) SweepExpiredHolds(ctx context.Context) (int64, error) {
	var released int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Bookings().ExpireHolds(ctx, tx.DB(), uc.clock.Now())
		if err != nil {
			return err
		}
		released = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return released, nil
}

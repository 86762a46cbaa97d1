package queries

import (
	"context"

	"agrirent/internal/infra"
	"agrirent/internal/pkg/errs"

	"github.com/google/uuid"
)

const DefaultListLimit = 50

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingListFilter, limit int) ([]*BookingListItem, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindFiltered(ctx context.Context, filter BookingListFilter, limit int32) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, err
	}
	if view.RenterID != actorID && view.OwnerID != actorID {
		return nil, errs.ErrAccessDenied
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, filter BookingListFilter, limit int) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return q.repo.FindFiltered(ctx, filter, int32(limit))
}

//go:build unit || e2e

package builder

import (
	"time"

	reqdto "agrirent/internal/handler/dto/request"
	"agrirent/internal/usecase/queries"
	"agrirent/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID               uuid.UUID
	EquipmentID      uuid.UUID
	EquipmentName    string
	RenterID         uuid.UUID
	OwnerID          uuid.UUID
	Dates            []string
	TotalAmountCents int64
	Status           string
	PaymentStatus    string
	HoldExpiry       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	return &BookingBuilder{
		ID:               uuid.New(),
		EquipmentID:      uuid.New(),
		EquipmentName:    "Compact Tractor",
		RenterID:         uuid.New(),
		OwnerID:          uuid.New(),
		Dates:            []string{"2026-03-12", "2026-03-13"},
		TotalAmountCents: 30000,
		Status:           "pending",
		PaymentStatus:    "pending",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		EquipmentID:      b.EquipmentID,
		SelectedDates:    b.Dates,
		TotalAmountCents: b.TotalAmountCents,
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	return &queries.BookingView{
		ID:                b.ID,
		EquipmentID:       b.EquipmentID,
		EquipmentName:     b.EquipmentName,
		RenterID:          b.RenterID,
		OwnerID:           b.OwnerID,
		BookedDates:       b.Dates,
		StartDate:         b.Dates[0],
		EndDate:           b.Dates[len(b.Dates)-1],
		TotalAmountCents:  b.TotalAmountCents,
		Status:            b.Status,
		PaymentStatus:     b.PaymentStatus,
		PaymentHoldExpiry: b.HoldExpiry,
		IsPaymentHold:     b.HoldExpiry != nil,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:               b.ID,
		EquipmentID:      b.EquipmentID,
		EquipmentName:    b.EquipmentName,
		StartDate:        b.Dates[0],
		EndDate:          b.Dates[len(b.Dates)-1],
		TotalAmountCents: b.TotalAmountCents,
		Status:           b.Status,
		CreatedAt:        b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:                b.ID,
		EquipmentID:       b.EquipmentID,
		RenterID:          b.RenterID,
		OwnerID:           b.OwnerID,
		Dates:             b.Dates,
		StartDate:         b.Dates[0],
		EndDate:           b.Dates[len(b.Dates)-1],
		TotalAmountCents:  b.TotalAmountCents,
		Status:            b.Status,
		PaymentStatus:     b.PaymentStatus,
		IsPaymentHold:     b.HoldExpiry != nil,
		PaymentHoldExpiry: b.HoldExpiry,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (b *BookingBuilder) WithEquipmentID(id uuid.UUID) *BookingBuilder {
	b.EquipmentID = id
	return b
}

func (b *BookingBuilder) WithRenterID(id uuid.UUID) *BookingBuilder {
	b.RenterID = id
	return b
}

func (b *BookingBuilder) WithOwnerID(id uuid.UUID) *BookingBuilder {
	b.OwnerID = id
	return b
}

func (b *BookingBuilder) WithDates(dates ...string) *BookingBuilder {
	b.Dates = dates
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithAmount(cents int64) *BookingBuilder {
	b.TotalAmountCents = cents
	return b
}

func (b *BookingBuilder) AsPaymentHold(expiry time.Time) *BookingBuilder {
	b.Status = "payment_hold"
	b.PaymentStatus = "pending"
	b.HoldExpiry = &expiry
	return b
}

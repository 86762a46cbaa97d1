package request

import (
	"agrirent/internal/usecase/commands"

	"github.com/google/uuid"
)

// CreateBookingRequest accepts either an explicit date list or a contiguous
// start/end range; selected_dates wins when both are present.
type CreateBookingRequest struct {
	EquipmentID      uuid.UUID `json:"equipment_id" binding:"required"`
	SelectedDates    []string  `json:"selected_dates,omitempty"`
	StartDate        string    `json:"start_date,omitempty"`
	EndDate          string    `json:"end_date,omitempty"`
	TotalAmountCents int64     `json:"total_amount_cents" binding:"required"`
}

func (r CreateBookingRequest) ToCommand(renterID uuid.UUID) commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		EquipmentID:      r.EquipmentID,
		RenterID:         renterID,
		SelectedDates:    r.SelectedDates,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		TotalAmountCents: r.TotalAmountCents,
	}
}

type UpdateBookingRequest struct {
	SelectedDates    []string `json:"selected_dates,omitempty"`
	StartDate        *string  `json:"start_date,omitempty"`
	EndDate          *string  `json:"end_date,omitempty"`
	TotalAmountCents *int64   `json:"total_amount_cents,omitempty"`
	Status           *string  `json:"status,omitempty"`
}

func (r UpdateBookingRequest) ToCommand() commands.UpdateBookingRequest {
	return commands.UpdateBookingRequest{
		SelectedDates:    r.SelectedDates,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		TotalAmountCents: r.TotalAmountCents,
		Status:           r.Status,
	}
}

type ConfirmPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	TransactionID string `json:"transaction_id" binding:"required"`
}

type CancelDatesRequest struct {
	Dates []string `json:"dates" binding:"required,min=1"`
}

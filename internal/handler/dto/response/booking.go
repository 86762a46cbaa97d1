package response

import (
	"time"

	"agrirent/internal/usecase/commands"
	"agrirent/internal/usecase/queries"
	"agrirent/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                uuid.UUID  `json:"id"`
	EquipmentID       uuid.UUID  `json:"equipmentId"`
	EquipmentName     string     `json:"equipmentName,omitempty"`
	RenterID          uuid.UUID  `json:"renterId"`
	OwnerID           uuid.UUID  `json:"ownerId"`
	BookedDates       []string   `json:"bookedDates"`
	StartDate         string     `json:"startDate"`
	EndDate           string     `json:"endDate"`
	TotalAmountCents  int64      `json:"totalAmountCents"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"paymentStatus"`
	IsPaymentHold     bool       `json:"isPaymentHold"`
	PaymentHoldExpiry *time.Time `json:"paymentHoldExpiry,omitempty"`
	PaymentMethod     *string    `json:"paymentMethod,omitempty"`
	TransactionID     *string    `json:"transactionId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID               uuid.UUID `json:"id"`
	EquipmentID      uuid.UUID `json:"equipmentId"`
	EquipmentName    string    `json:"equipmentName"`
	StartDate        string    `json:"startDate"`
	EndDate          string    `json:"endDate"`
	TotalAmountCents int64     `json:"totalAmountCents"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

type CancelDatesResponse struct {
	CancelledAll   bool     `json:"cancelledAll"`
	RemainingDates []string `json:"remainingDates"`
	NewAmountCents int64    `json:"newAmountCents"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                v.ID,
		EquipmentID:       v.EquipmentID,
		EquipmentName:     v.EquipmentName,
		RenterID:          v.RenterID,
		OwnerID:           v.OwnerID,
		BookedDates:       v.BookedDates,
		StartDate:         v.StartDate,
		EndDate:           v.EndDate,
		TotalAmountCents:  v.TotalAmountCents,
		Status:            v.Status,
		PaymentStatus:     v.PaymentStatus,
		IsPaymentHold:     v.IsPaymentHold,
		PaymentHoldExpiry: v.PaymentHoldExpiry,
		PaymentMethod:     v.PaymentMethod,
		TransactionID:     v.TransactionID,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func FromBookingSnapshot(s *shared.BookingSnapshot) *BookingResponse {
	return &BookingResponse{
		ID:                s.ID,
		EquipmentID:       s.EquipmentID,
		RenterID:          s.RenterID,
		OwnerID:           s.OwnerID,
		BookedDates:       s.Dates,
		StartDate:         s.StartDate,
		EndDate:           s.EndDate,
		TotalAmountCents:  s.TotalAmountCents,
		Status:            s.Status,
		PaymentStatus:     s.PaymentStatus,
		IsPaymentHold:     s.IsPaymentHold,
		PaymentHoldExpiry: s.PaymentHoldExpiry,
		PaymentMethod:     s.PaymentMethod,
		TransactionID:     s.TransactionID,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func FromBookingListItem(v *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:               v.ID,
		EquipmentID:      v.EquipmentID,
		EquipmentName:    v.EquipmentName,
		StartDate:        v.StartDate,
		EndDate:          v.EndDate,
		TotalAmountCents: v.TotalAmountCents,
		Status:           v.Status,
		CreatedAt:        v.CreatedAt,
	}
}

func FromCancelDatesResult(r *commands.CancelDatesResult) *CancelDatesResponse {
	remaining := r.RemainingDates
	if remaining == nil {
		remaining = []string{}
	}
	return &CancelDatesResponse{
		CancelledAll:   r.CancelledAll,
		RemainingDates: remaining,
		NewAmountCents: r.NewAmountCents,
	}
}

type SweepResponse struct {
	ReleasedHolds int64 `json:"releasedHolds"`
}

package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                uuid.UUID  `json:"id"`
	EquipmentID       uuid.UUID  `json:"equipment_id"`
	EquipmentName     string     `json:"equipment_name"`
	RenterID          uuid.UUID  `json:"renter_id"`
	OwnerID           uuid.UUID  `json:"owner_id"`
	BookedDates       []string   `json:"booked_dates"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	TotalAmountCents  int64      `json:"total_amount_cents"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"payment_status"`
	IsPaymentHold     bool       `json:"is_payment_hold"`
	PaymentHoldExpiry *time.Time `json:"payment_hold_expiry,omitempty"`
	PaymentMethod     *string    `json:"payment_method,omitempty"`
	TransactionID     *string    `json:"transaction_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID               uuid.UUID `json:"id"`
	EquipmentID      uuid.UUID `json:"equipment_id"`
	EquipmentName    string    `json:"equipment_name"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// BookingListFilter narrows the list query; nil fields match everything.
type BookingListFilter struct {
	RenterID    *uuid.UUID
	OwnerID     *uuid.UUID
	EquipmentID *uuid.UUID
	Status      *string
	// From and To select bookings whose date range overlaps [From, To],
	// both formatted as YYYY-MM-DD.
	From *string
	To   *string
}

type CalendarBooking struct {
	ID       uuid.UUID `json:"id"`
	RenterID uuid.UUID `json:"renter_id"`
	Status   string    `json:"status"`
}

type CalendarDay struct {
	Date           string            `json:"date"`
	BookedUnits    int               `json:"booked_units"`
	AvailableUnits int               `json:"available_units"`
	Available      bool              `json:"available"`
	Bookings       []CalendarBooking `json:"bookings"`
}

type CalendarView struct {
	EquipmentID   uuid.UUID     `json:"equipment_id"`
	EquipmentName string        `json:"equipment_name"`
	TotalUnits    int           `json:"total_units"`
	Month         string        `json:"month"` // YYYY-MM
	Days          []CalendarDay `json:"days"`
}

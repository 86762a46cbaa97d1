package equipment

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errors.New("equipment quantity must be at least 1")

// Equipment is read-only to the booking core: the catalog service owns its
// lifecycle, bookings only consume quantity and ownership.
type Equipment struct {
	id            uuid.UUID
	name          string
	totalQuantity int
	ownerID       uuid.UUID
}

func NewEquipment(id uuid.UUID, name string, totalQuantity int, ownerID uuid.UUID) (*Equipment, error) {
	if totalQuantity < 1 {
		return nil, ErrInvalidQuantity
	}
	return &Equipment{
		id:            id,
		name:          name,
		totalQuantity: totalQuantity,
		ownerID:       ownerID,
	}, nil
}

func (e *Equipment) ID() uuid.UUID      { return e.id }
func (e *Equipment) Name() string       { return e.name }
func (e *Equipment) TotalQuantity() int { return e.totalQuantity }
func (e *Equipment) OwnerID() uuid.UUID { return e.ownerID }

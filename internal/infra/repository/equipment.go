package repository

import (
	"context"

	"agrirent/internal/infra"
	"agrirent/internal/infra/db"
	"agrirent/internal/pkg/pgconv"
	"agrirent/internal/usecase/shared"

	"github.com/google/uuid"
)

type EquipmentRepository struct{}

func NewEquipmentRepository() *EquipmentRepository {
	return &EquipmentRepository{}
}

const lockEquipmentSQL = `
SELECT id, name, total_quantity, owner_id
FROM equipment
WHERE id = $1
FOR UPDATE`

// LockByID takes the row lock that serializes every capacity-consuming
// transition on this equipment until the transaction ends.
func (r *EquipmentRepository) LockByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.EquipmentSnapshot, error) {
	var snap shared.EquipmentSnapshot
	err := dbtx.QueryRow(ctx, lockEquipmentSQL, id).
		Scan(&snap.ID, &snap.Name, &snap.TotalQuantity, &snap.OwnerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("equipment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock equipment", err)
	}
	return &snap, nil
}

var _ shared.EquipmentRepository = (*EquipmentRepository)(nil)

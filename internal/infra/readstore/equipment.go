package readstore

import (
	"context"

	"agrirent/internal/infra"
	"agrirent/internal/infra/db"
	"agrirent/internal/pkg/pgconv"
	"agrirent/internal/usecase/shared"

	"github.com/google/uuid"
)

type EquipmentReadStore struct {
	db db.DBTX
}

func NewEquipmentReadStore(dbtx db.DBTX) *EquipmentReadStore {
	return &EquipmentReadStore{db: dbtx}
}

const equipmentByIDSQL = `
SELECT id, name, total_quantity, owner_id
FROM equipment
WHERE id = $1`

func (r *EquipmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.EquipmentSnapshot, error) {
	var snap shared.EquipmentSnapshot
	err := r.db.QueryRow(ctx, equipmentByIDSQL, id).
		Scan(&snap.ID, &snap.Name, &snap.TotalQuantity, &snap.OwnerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("equipment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find equipment by ID", err)
	}
	return &snap, nil
}

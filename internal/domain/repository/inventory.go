package repository

import (
	"context"

	"github.com/pasarmart/pasarmart/internal/domain/model"
)

// InventoryRepository exposes the catalog read slice the engine consumes.
// Stock decrement and increment are conditional writes inside the order
// create and cancel transactions, never separate repository calls.
type InventoryRepository interface {
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
}

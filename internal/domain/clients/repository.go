package clients

import (
	"context"

	"vet-clinic-ops/internal/domain/audit"
)

type Repository interface {
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id string) (Client, error)

	// Update reemplaza al cliente y, si entry != nil, agrega la entrada
	// de auditoría en la misma escritura.
	Update(ctx context.Context, c Client, entry *audit.Log) error
}

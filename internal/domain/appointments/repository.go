package appointments

import (
	"context"

	"vet-clinic-ops/internal/domain/audit"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	List(ctx context.Context, filter ListFilter) ([]Appointment, error)

	// Transition reemplaza la cita sólo si su estado guardado sigue siendo from.
	// Si entry != nil se agrega al timeline en la misma escritura.
	// Estado distinto => ErrInvalidTransition; id desconocido => ErrNotFound.
	Transition(ctx context.Context, updated Appointment, from Status, entry *audit.Log) error
}

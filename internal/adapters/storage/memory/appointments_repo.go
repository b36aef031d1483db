package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"vet-clinic-ops/internal/domain/appointments"
	"vet-clinic-ops/internal/domain/audit"
)

type appointmentRepo struct {
	store *Store
}

func NewAppointmentRepo(s *Store) appointments.Repository {
	return &appointmentRepo{store: s}
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	return r.store.AppendAppointment(a)
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	for _, a := range r.store.Snapshot().Appointments {
		if a.ID == id {
			return cloneAppointment(a), nil
		}
	}
	return appointments.Appointment{}, appointments.ErrNotFound
}

func (r *appointmentRepo) List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	snap := r.store.Snapshot()

	out := make([]appointments.Appointment, 0)
	for _, a := range snap.Appointments {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.ClientID != "" && a.ClientID != filter.ClientID {
			continue
		}
		out = append(out, cloneAppointment(a))
	}

	// Orden de cola: fecha asc
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *appointmentRepo) Transition(ctx context.Context, updated appointments.Appointment, from appointments.Status, entry *audit.Log) error {
	err := r.store.TransitionAppointment(updated, from, entry)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return fmt.Errorf("%w: %v", appointments.ErrNotFound, err)
	case errors.Is(err, ErrStatusMismatch):
		return fmt.Errorf("%w: %v", appointments.ErrInvalidTransition, err)
	default:
		return err
	}
}

package memory

import (
	"context"

	"vet-clinic-ops/internal/domain/appointments"
	"vet-clinic-ops/internal/domain/clients"
	"vet-clinic-ops/internal/domain/dashboard"
)

type dashboardSource struct {
	store *Store
}

// NewDashboardSource entrega clientes y citas del mismo snapshot.
func NewDashboardSource(s *Store) dashboard.Source {
	return &dashboardSource{store: s}
}

func (d *dashboardSource) Collections(ctx context.Context) ([]clients.Client, []appointments.Appointment, error) {
	snap := d.store.Snapshot()
	return cloneAll(snap.Clients, cloneClient), cloneAll(snap.Appointments, cloneAppointment), nil
}

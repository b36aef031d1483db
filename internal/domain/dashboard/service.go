package dashboard

import (
	"context"
	"time"

	"vet-clinic-ops/internal/domain/appointments"
	"vet-clinic-ops/internal/domain/clients"
)

// Source entrega clientes y citas de un mismo snapshot.
type Source interface {
	Collections(ctx context.Context) ([]clients.Client, []appointments.Appointment, error)
}

type Service struct {
	src Source
	now func() time.Time
}

func NewService(src Source) *Service {
	return &Service{
		src: src,
		now: time.Now,
	}
}

// Overview recalcula los KPIs en cada llamada.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	cs, as, err := s.src.Collections(ctx)
	if err != nil {
		return Overview{}, err
	}
	return ComputeOverview(cs, as, s.now()), nil
}

func (s *Service) Limbo(ctx context.Context) ([]clients.Client, error) {
	ov, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return ov.LimboClients, nil
}

// LimboClientIDs implementa clients.LimboSource.
func (s *Service) LimboClientIDs(ctx context.Context) ([]string, error) {
	cs, as, err := s.src.Collections(ctx)
	if err != nil {
		return nil, err
	}
	return Classify(cs, as, s.now()), nil
}

package memory

import (
	"vet-clinic-ops/internal/domain/appointments"
	"vet-clinic-ops/internal/domain/clients"
)

// Todo lo que entra o sale del store pasa por estas copias: un snapshot
// publicado no comparte slices ni punteros con quien llama.

func cloneClient(c clients.Client) clients.Client {
	c.Pets = append([]clients.Pet(nil), c.Pets...)
	return c
}

func cloneAppointment(a appointments.Appointment) appointments.Appointment {
	a.VetRating = clonePtr(a.VetRating)
	a.RiskScore = clonePtr(a.RiskScore)
	a.Sentiment = clonePtr(a.Sentiment)
	a.HealthEvolution = clonePtr(a.HealthEvolution)
	return a
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i := range in {
		out[i] = clone(in[i])
	}
	return out
}

package dashboard

import (
	"time"

	"vet-clinic-ops/internal/domain/appointments"
	"vet-clinic-ops/internal/domain/clients"
)

// Classify devuelve, en el orden de cs, los ids de clientes Active sin ninguna
// cita con fecha posterior a now. Pura: no cachea ni lee el reloj.
func Classify(cs []clients.Client, as []appointments.Appointment, now time.Time) []string {
	hasFuture := make(map[string]bool, len(cs))
	for _, a := range as {
		if a.Date.After(now) {
			hasFuture[a.ClientID] = true
		}
	}

	out := make([]string, 0)
	for _, c := range cs {
		if c.Status != clients.StatusActive {
			continue
		}
		if hasFuture[c.ID] {
			continue
		}
		out = append(out, c.ID)
	}
	return out
}

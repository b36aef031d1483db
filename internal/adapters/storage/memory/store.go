package memory

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"vet-clinic-ops/internal/domain/appointments"
	"vet-clinic-ops/internal/domain/audit"
	"vet-clinic-ops/internal/domain/clients"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrStatusMismatch = errors.New("stored status does not match")
)

// Snapshot es inmutable una vez publicado: nadie escribe sus slices.
type Snapshot struct {
	Clients      []clients.Client
	Appointments []appointments.Appointment
	Logs         []audit.Log
}

// Store guarda las tres colecciones. Lectores: Load atómico, sin lock.
// Escritores: serializados por mu; cada escritura publica un Snapshot nuevo.
type Store struct {
	mu   sync.Mutex
	snap atomic.Pointer[Snapshot]
}

func NewStore(initial Snapshot) *Store {
	s := &Store{}
	s.snap.Store(&Snapshot{
		Clients:      cloneAll(initial.Clients, cloneClient),
		Appointments: cloneAll(initial.Appointments, cloneAppointment),
		Logs:         append([]audit.Log(nil), initial.Logs...),
	})
	return s
}

// Snapshot devuelve la vista actual. No modificar.
func (s *Store) Snapshot() *Snapshot {
	return s.snap.Load()
}

func (s *Store) ReplaceAppointment(updated appointments.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snap.Load()
	idx := indexOfAppointment(cur.Appointments, updated.ID)
	if idx < 0 {
		return fmt.Errorf("appointment %s: %w", updated.ID, ErrNotFound)
	}

	next := *cur
	next.Appointments = replaceAt(cur.Appointments, idx, cloneAppointment(updated))
	s.snap.Store(&next)
	return nil
}

// TransitionAppointment reemplaza la cita sólo si su estado guardado es from,
// y agrega entry (si no es nil) en el mismo snapshot.
func (s *Store) TransitionAppointment(updated appointments.Appointment, from appointments.Status, entry *audit.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snap.Load()
	idx := indexOfAppointment(cur.Appointments, updated.ID)
	if idx < 0 {
		return fmt.Errorf("appointment %s: %w", updated.ID, ErrNotFound)
	}
	if got := cur.Appointments[idx].Status; got != from {
		return fmt.Errorf("appointment %s is %q, expected %q: %w", updated.ID, got, from, ErrStatusMismatch)
	}

	next := *cur
	next.Appointments = replaceAt(cur.Appointments, idx, cloneAppointment(updated))
	if entry != nil {
		if err := validateLog(*entry); err != nil {
			return err
		}
		next.Logs = appendCopy(cur.Logs, *entry)
	}
	s.snap.Store(&next)
	return nil
}

func (s *Store) AppendAppointment(a appointments.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	cur := s.snap.Load()
	if indexOfAppointment(cur.Appointments, a.ID) >= 0 {
		return fmt.Errorf("appointment %s: %w", a.ID, ErrAlreadyExists)
	}

	next := *cur
	next.Appointments = appendCopy(cur.Appointments, cloneAppointment(a))
	s.snap.Store(&next)
	return nil
}

func (s *Store) ReplaceClient(updated clients.Client) error {
	return s.ReplaceClientWithLog(updated, nil)
}

// ReplaceClientWithLog reemplaza al cliente y agrega entry en el mismo snapshot.
func (s *Store) ReplaceClientWithLog(updated clients.Client, entry *audit.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.snap.Load()
	idx := -1
	for i := range cur.Clients {
		if cur.Clients[i].ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("client %s: %w", updated.ID, ErrNotFound)
	}

	next := *cur
	next.Clients = replaceAt(cur.Clients, idx, cloneClient(updated))
	if entry != nil {
		if err := validateLog(*entry); err != nil {
			return err
		}
		next.Logs = appendCopy(cur.Logs, *entry)
	}
	s.snap.Store(&next)
	return nil
}

func (s *Store) AppendLog(l audit.Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateLog(l); err != nil {
		return err
	}

	cur := s.snap.Load()
	next := *cur
	next.Logs = appendCopy(cur.Logs, l)
	s.snap.Store(&next)
	return nil
}

func validateLog(l audit.Log) error {
	if strings.TrimSpace(l.ID) == "" {
		return errors.New("log id required")
	}
	return nil
}

func indexOfAppointment(as []appointments.Appointment, id string) int {
	for i := range as {
		if as[i].ID == id {
			return i
		}
	}
	return -1
}

// replaceAt copia el slice y reemplaza el elemento idx.
func replaceAt[T any](in []T, idx int, v T) []T {
	out := make([]T, len(in))
	copy(out, in)
	out[idx] = v
	return out
}

// appendCopy nunca reutiliza el backing array de in.
func appendCopy[T any](in []T, v T) []T {
	out := make([]T, len(in), len(in)+1)
	copy(out, in)
	return append(out, v)
}

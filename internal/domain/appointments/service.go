package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-clinic-ops/internal/domain/analysis"
	"vet-clinic-ops/internal/domain/audit"
	"vet-clinic-ops/internal/domain/clients"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("appointment not found")
)

// Analyzer es el analizador de consultas (nunca falla; ver analysis.Analyzer).
type Analyzer interface {
	Analyze(ctx context.Context, notes, serviceType string) analysis.Result
}

// Directory resuelve clientes para validar referencias.
type Directory interface {
	Get(ctx context.Context, id string) (clients.Client, error)
}

type Service struct {
	repo     Repository
	analyzer Analyzer
	dir      Directory
	now      func() time.Time
}

func NewService(repo Repository, analyzer Analyzer, dir Directory) *Service {
	return &Service{
		repo:     repo,
		analyzer: analyzer,
		dir:      dir,
		now:      time.Now,
	}
}

type ScheduleInput struct {
	ClientID    string
	PetID       string
	VetName     string
	Date        time.Time
	ServiceType ServiceType
	Notes       string
}

// Schedule crea una cita Pending. La mascota debe pertenecer al cliente.
func (s *Service) Schedule(ctx context.Context, in ScheduleInput) (Appointment, error) {
	clientID := strings.TrimSpace(in.ClientID)
	petID := strings.TrimSpace(in.PetID)

	if clientID == "" || petID == "" {
		return Appointment{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.VetName) == "" {
		return Appointment{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Appointment{}, ErrInvalidInput
	}
	if !in.ServiceType.Valid() {
		return Appointment{}, ErrInvalidInput
	}

	if s.dir != nil {
		c, err := s.dir.Get(ctx, clientID)
		if err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				return Appointment{}, fmt.Errorf("%w: unknown client %s", ErrInvalidInput, clientID)
			}
			return Appointment{}, err
		}
		if _, ok := c.FindPet(petID); !ok {
			return Appointment{}, fmt.Errorf("%w: pet %s does not belong to client %s", ErrInvalidInput, petID, clientID)
		}
	}

	a := Appointment{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		PetID:       petID,
		VetName:     strings.TrimSpace(in.VetName),
		Date:        in.Date.UTC(),
		Status:      StatusPending,
		ServiceType: in.ServiceType,
		Notes:       strings.TrimSpace(in.Notes),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (Appointment, error) {
	if strings.TrimSpace(id) == "" {
		return Appointment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Appointment, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, filter)
}

// Start abre la consulta (Pending -> In Progress).
func (s *Service) Start(ctx context.Context, id string) (Appointment, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	updated, err := Start(a)
	if err != nil {
		return Appointment{}, err
	}
	if err := s.repo.Transition(ctx, updated, a.Status, nil); err != nil {
		return Appointment{}, err
	}
	return updated, nil
}

// MarkNoShow cierra una cita Pending a la que el cliente no vino.
func (s *Service) MarkNoShow(ctx context.Context, id string) (Appointment, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	updated, err := MarkNoShow(a)
	if err != nil {
		return Appointment{}, err
	}
	if err := s.repo.Transition(ctx, updated, a.Status, nil); err != nil {
		return Appointment{}, err
	}
	return updated, nil
}

// Analyze corre el analizador sobre notes (o las notas guardadas si viene vacío).
// No modifica la cita: las métricas se fijan recién en Complete.
func (s *Service) Analyze(ctx context.Context, id, notes string) (analysis.Result, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return analysis.Result{}, err
	}

	notes = strings.TrimSpace(notes)
	if notes == "" {
		notes = strings.TrimSpace(a.Notes)
	}
	if notes == "" {
		return analysis.Result{}, fmt.Errorf("%w: notes required for analysis", ErrInvalidInput)
	}

	return s.runAnalyzer(ctx, notes, a.ServiceType), nil
}

type CompleteInput struct {
	Notes string

	// Assessment ya obtenido por el cliente (POST /analyze). Si es nil y
	// Analyze es true, se analiza acá antes de completar.
	Assessment *analysis.Assessment
	Analyze    bool

	VetRating *int
}

// Complete cierra la consulta y registra la entrada Medical en el timeline,
// ambas cosas en una sola escritura del store.
func (s *Service) Complete(ctx context.Context, id string, in CompleteInput) (Appointment, audit.Log, error) {
	notes := strings.TrimSpace(in.Notes)
	if notes == "" {
		return Appointment{}, audit.Log{}, fmt.Errorf("%w: notes required", ErrInvalidInput)
	}
	if in.VetRating != nil && (*in.VetRating < MinVetRating || *in.VetRating > MaxVetRating) {
		return Appointment{}, audit.Log{}, fmt.Errorf("%w: vetRating must be %d-%d", ErrInvalidInput, MinVetRating, MaxVetRating)
	}
	if in.Assessment != nil {
		normalized := *in.Assessment
		normalized.HealthTrend = analysis.ParseHealthTrend(string(normalized.HealthTrend))
		in.Assessment = &normalized
	}
	if in.Assessment != nil && !in.Assessment.Valid() {
		return Appointment{}, audit.Log{}, fmt.Errorf("%w: assessment out of range", ErrInvalidInput)
	}

	a, err := s.Get(ctx, id)
	if err != nil {
		return Appointment{}, audit.Log{}, err
	}
	// Falla antes de llamar al analizador.
	if a.Status != StatusInProgress {
		return Appointment{}, audit.Log{}, fmt.Errorf("%w: complete from %q", ErrInvalidTransition, a.Status)
	}

	as := in.Assessment
	if as == nil && in.Analyze {
		res := s.runAnalyzer(ctx, notes, a.ServiceType)
		as = &res.Assessment
	}

	updated, err := Complete(a, notes, as)
	if err != nil {
		return Appointment{}, audit.Log{}, err
	}
	if in.VetRating != nil {
		rating := *in.VetRating
		updated.VetRating = &rating
	}

	entry := CompletionLog(updated, uuid.NewString(), s.now().UTC())

	if err := s.repo.Transition(ctx, updated, StatusInProgress, &entry); err != nil {
		return Appointment{}, audit.Log{}, err
	}
	return updated, entry, nil
}

// PetName resuelve el nombre para mostrar; referencias rotas => clients.UnknownPetName.
func (s *Service) PetName(ctx context.Context, a Appointment) string {
	if s.dir == nil {
		return clients.UnknownPetName
	}
	c, err := s.dir.Get(ctx, a.ClientID)
	if err != nil {
		return clients.UnknownPetName
	}
	return c.PetName(a.PetID)
}

func (s *Service) runAnalyzer(ctx context.Context, notes string, st ServiceType) analysis.Result {
	if s.analyzer == nil {
		return analysis.Result{Assessment: analysis.MissingCredentialAssessment(), Source: analysis.SourceNoCredential}
	}
	return s.analyzer.Analyze(ctx, notes, string(st))
}

package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-clinic-ops/internal/domain/audit"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("client not found")
	ErrPetNotFound  = errors.New("pet not found")
)

const (
	PlanChangeAction = "Plan updated"
	DefaultActor     = "Admin"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Client, error) {
	if strings.TrimSpace(id) == "" {
		return Client{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// Pet devuelve la mascota sólo si pertenece al cliente.
func (s *Service) Pet(ctx context.Context, clientID, petID string) (Pet, error) {
	c, err := s.Get(ctx, clientID)
	if err != nil {
		return Pet{}, err
	}
	p, ok := c.FindPet(petID)
	if !ok {
		return Pet{}, ErrPetNotFound
	}
	return p, nil
}

// ChangePlan cambia el plan y deja una entrada Financial en el timeline.
// Mismo plan => no-op, sin entrada.
func (s *Service) ChangePlan(ctx context.Context, clientID string, plan Plan, actor string) (Client, error) {
	if !plan.Valid() {
		return Client{}, ErrInvalidInput
	}
	c, err := s.Get(ctx, clientID)
	if err != nil {
		return Client{}, err
	}
	if c.Plan == plan {
		return c, nil
	}

	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = DefaultActor
	}

	entry := audit.Log{
		ID:        uuid.NewString(),
		ClientID:  c.ID,
		Timestamp: s.now().UTC(),
		Action:    PlanChangeAction,
		User:      actor,
		Details:   fmt.Sprintf("Plan changed from %s to %s", c.Plan, plan),
		Type:      audit.TypeFinancial,
	}

	c.Plan = plan
	if err := s.repo.Update(ctx, c, &entry); err != nil {
		return Client{}, err
	}
	return c, nil
}

package audit

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
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

type AppendInput struct {
	ClientID string
	PetID    string
	Action   string
	User     string
	Details  string
	Type     Type

	// Zero => ahora.
	Timestamp time.Time
}

// Append registra una entrada escrita por fuera del ciclo de consultas
// (cambio de plan, vacunación, carga inicial).
func (s *Service) Append(ctx context.Context, in AppendInput) (Log, error) {
	if strings.TrimSpace(in.ClientID) == "" {
		return Log{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Action) == "" {
		return Log{}, ErrInvalidInput
	}
	if !in.Type.Valid() {
		return Log{}, ErrInvalidInput
	}

	ts := in.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}

	l := Log{
		ID:        uuid.NewString(),
		ClientID:  strings.TrimSpace(in.ClientID),
		PetID:     strings.TrimSpace(in.PetID),
		Timestamp: ts.UTC(),
		Action:    strings.TrimSpace(in.Action),
		User:      strings.TrimSpace(in.User),
		Details:   strings.TrimSpace(in.Details),
		Type:      in.Type,
	}

	if err := s.repo.Append(ctx, l); err != nil {
		return Log{}, err
	}
	return l, nil
}

// ForClient devuelve el timeline del cliente, más reciente primero.
func (s *Service) ForClient(ctx context.Context, clientID string) ([]Log, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(items)
	return items, nil
}

// SortNewestFirst ordena por timestamp desc. En empates gana la última insertada.
func SortNewestFirst(items []Log) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
}

package memory

import (
	"context"
	"errors"
	"fmt"

	"vet-clinic-ops/internal/domain/audit"
	"vet-clinic-ops/internal/domain/clients"
)

type clientRepo struct {
	store *Store
}

func NewClientRepo(s *Store) clients.Repository {
	return &clientRepo{store: s}
}

func (r *clientRepo) List(ctx context.Context) ([]clients.Client, error) {
	snap := r.store.Snapshot()
	out := make([]clients.Client, 0, len(snap.Clients))
	for _, c := range snap.Clients {
		out = append(out, cloneClient(c))
	}
	return out, nil
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	for _, c := range r.store.Snapshot().Clients {
		if c.ID == id {
			return cloneClient(c), nil
		}
	}
	return clients.Client{}, clients.ErrNotFound
}

func (r *clientRepo) Update(ctx context.Context, c clients.Client, entry *audit.Log) error {
	err := r.store.ReplaceClientWithLog(c, entry)
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %v", clients.ErrNotFound, err)
	}
	return err
}

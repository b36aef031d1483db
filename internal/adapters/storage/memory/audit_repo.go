package memory

import (
	"context"

	"vet-clinic-ops/internal/domain/audit"
)

type auditRepo struct {
	store *Store
}

func NewAuditRepo(s *Store) audit.Repository {
	return &auditRepo{store: s}
}

func (r *auditRepo) Append(ctx context.Context, l audit.Log) error {
	return r.store.AppendLog(l)
}

// ListByClient devuelve en orden de inserción; el orden de display lo fija el service.
func (r *auditRepo) ListByClient(ctx context.Context, clientID string) ([]audit.Log, error) {
	out := make([]audit.Log, 0)
	for _, l := range r.store.Snapshot().Logs {
		if l.ClientID == clientID {
			out = append(out, l)
		}
	}
	return out, nil
}

package audit

import "context"

type Repository interface {
	Append(ctx context.Context, l Log) error
	ListByClient(ctx context.Context, clientID string) ([]Log, error)
}

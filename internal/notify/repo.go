package notify

import "context"

// Repo persists delivery attempts.
type Repo interface {
	Create(ctx context.Context, d Delivery) error
	ListRecent(ctx context.Context, limit int) ([]Delivery, error)
}

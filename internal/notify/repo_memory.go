package notify

import (
	"context"
	"sort"
	"sync"
)

const memoryRepoCap = 500

// MemoryRepo keeps the most recent deliveries in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu         sync.RWMutex
	deliveries []Delivery
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create stores the delivery, dropping the oldest once the cap is reached.
func (r *MemoryRepo) Create(ctx context.Context, d Delivery) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, d)
	if over := len(r.deliveries) - memoryRepoCap; over > 0 {
		r.deliveries = append([]Delivery(nil), r.deliveries[over:]...)
	}
	return nil
}

// ListRecent returns up to limit deliveries, newest first.
func (r *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := append([]Delivery(nil), r.deliveries...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

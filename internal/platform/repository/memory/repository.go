package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

type Entity[K cmp.Ordered] interface {
	GetID() K
}

// Repository is a mutex-guarded map. List and Find return entities ordered by key.
type Repository[K cmp.Ordered, T Entity[K]] struct {
	data map[K]T
	mu   sync.RWMutex
}

func New[K cmp.Ordered, T Entity[K]]() *Repository[K, T] {
	return &Repository[K, T]{
		data: make(map[K]T),
	}
}

func (r *Repository[K, T]) Save(_ context.Context, entity T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := entity.GetID()
	if _, exists := r.data[id]; exists {
		return ErrAlreadyExists
	}

	r.data[id] = entity
	return nil
}

func (r *Repository[K, T]) GetByID(_ context.Context, id K) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero T
	entity, exists := r.data[id]
	if !exists {
		return zero, ErrNotFound
	}

	return entity, nil
}

func (r *Repository[K, T]) Update(_ context.Context, entity T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := entity.GetID()
	if _, exists := r.data[id]; !exists {
		return ErrNotFound
	}

	r.data[id] = entity
	return nil
}

// Modify applies fn to the stored entity under the write lock and stores the result.
func (r *Repository[K, T]) Modify(_ context.Context, id K, fn func(T) (T, error)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	current, exists := r.data[id]
	if !exists {
		return zero, ErrNotFound
	}

	updated, err := fn(current)
	if err != nil {
		return zero, err
	}

	r.data[id] = updated
	return updated, nil
}

func (r *Repository[K, T]) Delete(_ context.Context, id K) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[id]; !exists {
		return ErrNotFound
	}

	delete(r.data, id)
	return nil
}

func (r *Repository[K, T]) List(ctx context.Context) ([]T, error) {
	return r.Find(ctx, func(T) bool { return true })
}

func (r *Repository[K, T]) Find(_ context.Context, match func(T) bool) ([]T, error) {
	r.mu.RLock()
	keys := make([]K, 0, len(r.data))
	for k, entity := range r.data {
		if match(entity) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	entities := make([]T, 0, len(keys))
	for _, k := range keys {
		entities = append(entities, r.data[k])
	}
	r.mu.RUnlock()

	return entities, nil
}

func (r *Repository[K, T]) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.data), nil
}

package world

import (
	"sync"
	"sync/atomic"

	"github.com/udisondev/openworld/internal/model"
)

// Registry хранит живые объекты по ObjectID. ID, сохранённый снаружи, это слабая
// ссылка: после удаления объекта поиск не находит его, и владелец считает его исчезнувшим.
type Registry[T any] struct {
	items sync.Map // map[model.ObjectID]T
	count atomic.Int32
}

// Add registers v under id, replacing a previous entry.
func (r *Registry[T]) Add(id model.ObjectID, v T) {
	if _, loaded := r.items.Swap(id, v); !loaded {
		r.count.Add(1)
	}
}

// Remove drops id. Returns false if it was not registered.
func (r *Registry[T]) Remove(id model.ObjectID) bool {
	if _, ok := r.items.LoadAndDelete(id); ok {
		r.count.Add(-1)
		return true
	}
	return false
}

// Get resolves a handle.
func (r *Registry[T]) Get(id model.ObjectID) (T, bool) {
	v, ok := r.items.Load(id)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Len returns the number of registered objects.
func (r *Registry[T]) Len() int { return int(r.count.Load()) }

// Range calls fn for each object until fn returns false.
func (r *Registry[T]) Range(fn func(id model.ObjectID, v T) bool) {
	r.items.Range(func(k, v any) bool {
		return fn(k.(model.ObjectID), v.(T))
	})
}

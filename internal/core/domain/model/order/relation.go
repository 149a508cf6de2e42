package order

import (
	"context"

	"ordering/internal/pkg/errs"
)

// Scope is the unit of work a lazy relation was produced by. Fetching is only
// allowed while it is active.
type Scope interface {
	Active() bool
}

// FetchFunc loads a relation's value from the store.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Relation is a reference slot that is either loaded, lazily bound to a
// fetch inside a Scope, or not fetched at all.
type Relation[T any] struct {
	name   string
	value  T
	loaded bool
	scope  Scope
	fetch  FetchFunc[T]
}

// Loaded returns a slot already holding v.
func Loaded[T any](name string, v T) Relation[T] {
	return Relation[T]{name: name, value: v, loaded: true}
}

// Lazy returns a slot that calls fetch on first Get while scope is active.
func Lazy[T any](name string, scope Scope, fetch FetchFunc[T]) Relation[T] {
	return Relation[T]{name: name, scope: scope, fetch: fetch}
}

// NotFetched returns a slot that can never be read. Used by read paths that
// deliberately skip a relation.
func NotFetched[T any](name string) Relation[T] {
	return Relation[T]{name: name}
}

// IsLoaded reports whether the slot holds a value.
func (r *Relation[T]) IsLoaded() bool {
	return r.loaded
}

// Peek returns the value without fetching.
func (r *Relation[T]) Peek() (T, error) {
	if !r.loaded {
		var zero T
		return zero, errs.NewLoaderUsageError(r.name, "relation is not loaded")
	}
	return r.value, nil
}

// Get returns the value, fetching it once if the slot is lazy and its scope is
// still active.
func (r *Relation[T]) Get(ctx context.Context) (T, error) {
	if r.loaded {
		return r.value, nil
	}

	var zero T
	if r.fetch == nil {
		return zero, errs.NewLoaderUsageError(r.name, "relation was not fetched by this read path")
	}
	if r.scope == nil || !r.scope.Active() {
		return zero, errs.NewLoaderUsageError(r.name, "relation accessed outside its unit of work")
	}

	v, err := r.fetch(ctx)
	if err != nil {
		return zero, err
	}
	r.value = v
	r.loaded = true
	r.fetch = nil
	r.scope = nil
	return v, nil
}

func (r *Relation[T]) set(v T) {
	r.value = v
	r.loaded = true
	r.fetch = nil
	r.scope = nil
}

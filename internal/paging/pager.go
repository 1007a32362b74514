// Package paging implements a lazily paginated sequence: items are fetched
// a page at a time, on demand, and a loading flag is exposed while a page
// is in flight.
package paging

import (
	"context"
	"fmt"
	"sync"
)

// FetchFunc loads one page (1-based). hasNext reports whether another page
// follows it.
type FetchFunc[T any] func(ctx context.Context, page int) (items []T, hasNext bool, err error)

// Snapshot is a point-in-time copy of a Pager's state.
type Snapshot[T any] struct {
	Items   []T
	Loading bool
	Done    bool
	Err     error
}

// Pager accumulates pages returned by a FetchFunc.
type Pager[T any] struct {
	fetch FetchFunc[T]

	mu      sync.Mutex
	items   []T
	next    int
	loading bool
	done    bool
	err     error
}

// New creates a pager that starts at page 1.
func New[T any](fetch FetchFunc[T]) *Pager[T] {
	return &Pager[T]{fetch: fetch, next: 1}
}

// Load fetches the next page. It is a no-op when a load is already in flight
// or the sequence is exhausted. notify, if non-nil, is called once the
// loading flag is raised and again once the page has been applied.
// A failed page is not skipped: the next Load retries it.
func (p *Pager[T]) Load(ctx context.Context, notify func()) error {
	p.mu.Lock()
	if p.loading || p.done {
		p.mu.Unlock()
		return nil
	}
	p.loading = true
	p.err = nil
	page := p.next
	p.mu.Unlock()

	if notify != nil {
		notify()
	}

	items, hasNext, err := p.fetch(ctx, page)

	p.mu.Lock()
	p.loading = false
	if err != nil {
		p.err = fmt.Errorf("loading page %d: %w", page, err)
	} else {
		p.items = append(p.items, items...)
		p.next = page + 1
		p.done = !hasNext
	}
	err = p.err
	p.mu.Unlock()

	if notify != nil {
		notify()
	}
	return err
}

// Snapshot returns a copy of the current state.
func (p *Pager[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]T, len(p.items))
	copy(items, p.items)

	return Snapshot[T]{
		Items:   items,
		Loading: p.loading,
		Done:    p.done,
		Err:     p.err,
	}
}

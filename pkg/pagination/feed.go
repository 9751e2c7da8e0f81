package pagination

import (
	"context"
	"slices"
	"sync"
)

// FetchFunc retrieves one page of results for the given request.
type FetchFunc[T any] func(ctx context.Context, req PageRequest) (PageResult[T], error)

// Feed accumulates pages of results into a continuously extendable list.
// It is the client-session accumulator for consumers of the paginated API:
// Go clients embedding this package hold one Feed per browse view, while the
// server itself stays stateless and serves single pages. Reset discards
// accumulated results and fetches the first page for a new input set;
// LoadMore appends the next page. A reset always supersedes any in-flight
// load for the prior input set: a stale page response that settles after a
// newer reset is discarded rather than appended.
//
// Feed is safe for concurrent use. Fetches run outside the lock, so a slow
// page request never blocks a reset.
type Feed[T any] struct {
	fetch FetchFunc[T]

	mu      sync.Mutex
	gen     uint64
	req     PageRequest
	items   []T
	page    int
	hasMore bool
	loading bool
}

// NewFeed creates a Feed over the given fetch function. The feed starts
// empty with no more pages; call Reset to load the first page.
func NewFeed[T any](fetch FetchFunc[T]) *Feed[T] {
	return &Feed[T]{fetch: fetch}
}

// Reset discards accumulated results and fetches the first page for req.
// On fetch failure the previously accumulated results are preserved and the
// error is returned; pagination halts until the next explicit Reset.
func (f *Feed[T]) Reset(ctx context.Context, req PageRequest) error {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	req.Page = 1
	f.req = req
	f.mu.Unlock()

	result, err := f.fetch(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gen != gen {
		// superseded by a newer reset or clear
		return nil
	}
	if err != nil {
		return err
	}

	f.items = slices.Clone(result.Data)
	f.page = 1
	f.hasMore = result.HasMore
	return nil
}

// LoadMore fetches the page after the last successfully loaded one and
// appends it. It is a no-op when no more pages are available or another
// load is already in flight. A stale response that completes after a newer
// Reset is discarded.
func (f *Feed[T]) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if !f.hasMore || f.loading {
		f.mu.Unlock()
		return nil
	}
	f.loading = true
	gen := f.gen
	req := f.req
	req.Page = f.page + 1
	f.mu.Unlock()

	result, err := f.fetch(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.loading = false
	if f.gen != gen {
		return nil
	}
	if err != nil {
		return err
	}

	f.items = append(f.items, result.Data...)
	f.page = req.Page
	f.hasMore = result.HasMore
	return nil
}

// Clear resets the feed to a loaded-empty state without fetching. Any
// in-flight fetch for the prior input set is superseded.
func (f *Feed[T]) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.items = nil
	f.page = 0
	f.hasMore = false
}

// Items returns a snapshot of the accumulated results.
func (f *Feed[T]) Items() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.items)
}

// HasMore reports whether another page may be available.
func (f *Feed[T]) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// Page returns the last successfully loaded page number, zero when empty.
func (f *Feed[T]) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

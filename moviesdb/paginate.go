package moviesdb

import (
	"context"
	"net/url"
	"strconv"
)

// Iter walks a paginated endpoint one page at a time. Each Next call issues
// exactly one request; no page is fetched ahead of the one being consumed,
// so abandoning the iterator costs nothing further. Pages arrive strictly
// in increasing page order. An Iter is single use; call the facade method
// again for a fresh walk.
type Iter[T item] struct {
	client  *Client
	ep      Endpoint
	path    string
	query   url.Values
	page    int
	curPage int
	next    string
	entries *int
	items   []T
	done    bool
	err     error
}

func newIter[T item](c *Client, ep Endpoint, path string, q Query) *Iter[T] {
	values, err := validateQuery(endpoints[ep], q)
	if err != nil {
		return errIter[T](err)
	}

	// The walk starts at page 1 unless the caller picked a later start.
	page := 1
	if v := values.Get("page"); v != "" {
		page, _ = strconv.Atoi(v)
	}

	return &Iter[T]{
		client: c,
		ep:     ep,
		path:   path,
		query:  values,
		page:   page,
	}
}

func errIter[T item](err error) *Iter[T] {
	return &Iter[T]{done: true, err: err}
}

// Next fetches the next page, reporting whether one was produced. It
// returns false once the sequence ends or a failure occurs; check Err
// afterwards.
func (it *Iter[T]) Next(ctx context.Context) bool {
	if it.done {
		return false
	}

	q := url.Values{}
	for k, v := range it.query {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(it.page))

	env, err := it.client.getEnvelope(ctx, it.ep, it.path, q)
	if err != nil {
		it.err = err
		it.done = true
		return false
	}

	items, err := decodeItems[T](env)
	if err != nil {
		it.err = err
		it.done = true
		return false
	}

	it.items = items
	it.curPage = it.page
	it.next = env.Next
	it.entries = env.Entries

	// An absent next marker ends the sequence. It is an opaque cursor:
	// continuation advances by page number, the marker is only surfaced.
	if env.Next == "" {
		it.done = true
	} else {
		it.page++
	}
	return true
}

// Items returns the current page's records.
func (it *Iter[T]) Items() []T { return it.items }

// PageNumber returns the page number of the current page.
func (it *Iter[T]) PageNumber() int { return it.curPage }

// Entries returns the envelope's total entry count, when the API sent one.
func (it *Iter[T]) Entries() (int, bool) {
	if it.entries == nil {
		return 0, false
	}
	return *it.entries, true
}

// NextToken returns the opaque continuation marker of the current page;
// empty on the final page.
func (it *Iter[T]) NextToken() string { return it.next }

// Err returns the failure that ended the walk, if any.
func (it *Iter[T]) Err() error { return it.err }

// Collect drains the iterator into one slice.
func (it *Iter[T]) Collect(ctx context.Context) ([]T, error) {
	var all []T
	for it.Next(ctx) {
		all = append(all, it.items...)
	}
	return all, it.err
}

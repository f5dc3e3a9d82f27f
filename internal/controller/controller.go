// Package controller drives a paginated, sortable, filterable listing from
// the client side. A Controller owns the current query, fetches the matching
// page through a Fetcher whenever the query changes, and publishes the
// resulting state to subscribers.
//
// Only the most recently issued query may update the visible rows: a
// response that arrives after the query has changed again is discarded.
package controller

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"datalist/internal/domain"
)

// Fetcher evaluates a query remotely. pkg/client implements it over HTTP.
type Fetcher interface {
	Fetch(ctx context.Context, q domain.Query) (domain.Result, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, q domain.Query) (domain.Result, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, q domain.Query) (domain.Result, error) {
	return f(ctx, q)
}

// State is a snapshot of the controller.
type State struct {
	Query      domain.Query
	Rows       []domain.Record
	TotalCount int
	PageCount  int
	Loading    bool   // a request for Query is in flight
	Err        error  // error of the last completed request, nil on success
	Seq        uint64 // bumped on every query change
	Completed  uint64 // Seq of the last request that completed
}

// Settled reports whether the latest query has been answered, successfully
// or not.
func (s State) Settled() bool { return s.Completed == s.Seq }

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for discarded responses and fetch errors.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithColumns restricts ToggleSort and SetFilter to the sortable and
// filterable columns in cols. Without it every field is accepted.
func WithColumns(cols []domain.ColumnDef) Option {
	return func(c *Controller) { c.columns = slices.Clone(cols) }
}

// Controller holds the query state and runs fetches for it.
type Controller struct {
	fetcher Fetcher
	logger  *slog.Logger
	columns []domain.ColumnDef

	// wake has capacity 1: any number of changes made while a fetch is in
	// flight collapse into a single follow-up fetch of the latest query.
	wake chan struct{}

	mu       sync.Mutex
	state    State
	seq      uint64             // sequence of the latest query
	issued   uint64             // sequence of the latest dispatched fetch
	cancel   context.CancelFunc // cancels the in-flight fetch, if any
	subs     []chan State
	finished bool
}

// New creates a Controller for initial. The first fetch is issued as soon
// as Run starts.
func New(fetcher Fetcher, initial domain.Query, opts ...Option) *Controller {
	c := &Controller{
		fetcher: fetcher,
		logger:  slog.Default(),
		wake:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.seq = 1
	c.state = State{Query: initial, Seq: c.seq}
	c.wake <- struct{}{}
	return c
}

// Run dispatches fetches until ctx is done. It must be called exactly once.
// Subscriber channels are closed when Run returns.
func (c *Controller) Run(ctx context.Context) error {
	defer c.finish()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.wake:
			c.dispatch(ctx)
		}
	}
}

func (c *Controller) dispatch(ctx context.Context) {
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	q, seq := c.state.Query, c.seq
	if seq == c.issued {
		c.mu.Unlock()
		return
	}
	c.issued = seq
	c.cancel = cancel
	c.state.Loading = true
	c.publishLocked()
	c.mu.Unlock()

	res, err := c.fetcher.Fetch(fetchCtx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.logger.Debug("discarding stale response", "seq", seq, "latest", c.seq)
		return
	}
	c.cancel = nil
	c.state.Loading = false
	c.state.Completed = seq
	if err != nil {
		// Previous rows stay visible alongside the error.
		c.logger.Warn("fetch failed", "seq", seq, "error", err)
		c.state.Err = err
	} else {
		c.state.Err = nil
		c.state.Rows = res.Rows
		c.state.TotalCount = res.TotalCount
		c.state.PageCount = res.PageCount(q.Limit)
	}
	c.publishLocked()
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Rows = slices.Clone(s.Rows)
	return s
}

// Subscribe returns a channel that receives the latest state after every
// change. The channel holds at most one state; a slow reader only sees the
// newest one. It is closed when Run returns.
func (c *Controller) Subscribe() <-chan State {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan State, 1)
	if c.finished {
		close(ch)
		return ch
	}
	ch <- c.state
	c.subs = append(c.subs, ch)
	return ch
}

// SetOptions replaces the query wholesale. When the sort or filter differs
// from the current query, the page is reset to 0 in the same update.
func (c *Controller) SetOptions(q domain.Query) error {
	if err := q.Validate(); err != nil {
		return err
	}
	c.update(func(domain.Query) domain.Query { return q })
	return nil
}

// SetPage moves to page p, keeping sort and filter.
func (c *Controller) SetPage(p int) error {
	if p < 0 {
		return domain.ErrInvalidQuery("page must be a non-negative integer")
	}
	c.update(func(q domain.Query) domain.Query {
		q.Page = p
		return q
	})
	return nil
}

// SetLimit changes the page size and returns to the first page.
func (c *Controller) SetLimit(limit int) error {
	if limit <= 0 {
		return domain.ErrInvalidQuery("limit must be a positive integer")
	}
	c.update(func(q domain.Query) domain.Query {
		q.Limit = limit
		q.Page = 0
		return q
	})
	return nil
}

// ToggleSort sorts by column. Toggling the current sort column flips its
// direction; any other column starts ascending.
func (c *Controller) ToggleSort(column string) error {
	if err := c.checkColumn(column, func(col domain.ColumnDef) bool { return col.Sortable }, "sortable"); err != nil {
		return err
	}
	c.update(func(q domain.Query) domain.Query { return q.WithSortToggled(column) })
	return nil
}

// SetFilter filters by column. An empty value keeps the filter fields but
// matches every record.
func (c *Controller) SetFilter(column string, ft domain.FilterType, value string) error {
	if !ft.Valid() {
		return domain.ErrInvalidQuery("unknown filter type %q", ft)
	}
	if err := c.checkColumn(column, func(col domain.ColumnDef) bool { return col.Filterable }, "filterable"); err != nil {
		return err
	}
	c.update(func(q domain.Query) domain.Query {
		q.Filter = column
		q.FilterType = ft
		q.FilterValue = value
		return q
	})
	return nil
}

// ClearFilter removes the filter.
func (c *Controller) ClearFilter() {
	c.update(domain.Query.WithoutFilter)
}

func (c *Controller) checkColumn(id string, allowed func(domain.ColumnDef) bool, what string) error {
	if c.columns == nil {
		return nil
	}
	col, err := domain.FindColumn(c.columns, id)
	if err != nil {
		return err
	}
	if !allowed(col) {
		return domain.ErrInvalidQuery("column %q is not %s", id, what)
	}
	return nil
}

// update applies fn to the current query and schedules a fetch.
func (c *Controller) update(fn func(domain.Query) domain.Query) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state.Query
	next := fn(prev)
	if !next.SameView(prev) {
		next.Page = 0
	}

	c.seq++
	c.state.Query = next
	c.state.Seq = c.seq
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	select {
	case c.wake <- struct{}{}:
	default:
	}
	c.publishLocked()
}

// publishLocked replaces any unread state in each subscriber channel with
// the current one. c.mu must be held.
func (c *Controller) publishLocked() {
	if c.finished {
		return
	}
	s := c.state
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

func (c *Controller) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finished = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	for _, ch := range c.subs {
		close(ch)
	}
	c.subs = nil
}

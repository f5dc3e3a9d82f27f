package cli

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"datalist/internal/controller"
	"datalist/internal/domain"
)

// session runs a controller in the background for the lifetime of a
// command.
type session struct {
	ctrl   *controller.Controller
	sub    <-chan controller.State
	cancel context.CancelFunc
	group  *errgroup.Group
	ctx    context.Context
}

func startSession(ctx context.Context, f controller.Fetcher, q domain.Query, logger *slog.Logger, opts ...controller.Option) *session {
	ctx, cancel := context.WithCancel(ctx)
	opts = append([]controller.Option{controller.WithLogger(logger)}, opts...)
	ctrl := controller.New(loggedFetcher(f, logger), q, opts...)
	sub := ctrl.Subscribe()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctrl.Run(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	return &session{ctrl: ctrl, sub: sub, cancel: cancel, group: g, ctx: gctx}
}

// await blocks until the controller has answered a query at least as new
// as seq.
func (s *session) await(seq uint64) (controller.State, error) {
	for {
		select {
		case <-s.ctx.Done():
			return controller.State{}, s.ctx.Err()
		case st, ok := <-s.sub:
			if !ok {
				return controller.State{}, context.Canceled
			}
			if st.Settled() && st.Seq >= seq {
				return st, nil
			}
		}
	}
}

func (s *session) stop() error {
	s.cancel()
	return s.group.Wait()
}

// fetchOnce evaluates q through a controller and returns the settled state.
func fetchOnce(ctx context.Context, f controller.Fetcher, q domain.Query, logger *slog.Logger) (controller.State, error) {
	s := startSession(ctx, f, q, logger)
	st, err := s.await(1)
	if stopErr := s.stop(); err == nil {
		err = stopErr
	}
	if err != nil {
		return controller.State{}, err
	}
	return st, st.Err
}

// loggedFetcher reports every fetch at debug level, which -v makes visible.
func loggedFetcher(f controller.Fetcher, logger *slog.Logger) controller.Fetcher {
	return controller.FetcherFunc(func(ctx context.Context, q domain.Query) (domain.Result, error) {
		start := time.Now()
		res, err := f.Fetch(ctx, q)
		attrs := []any{"page", q.Page, "limit", q.Limit, "elapsed", time.Since(start)}
		if err != nil {
			logger.Debug("fetch failed", append(attrs, "error", err)...)
			return res, err
		}
		logger.Debug("fetched page", append(attrs, "rows", len(res.Rows), "total", res.TotalCount)...)
		return res, nil
	})
}

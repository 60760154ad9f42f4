package forestdb

import "context"

// Future is the result of an async read, resolved once the worker pool has
// run the query.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) complete(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Wait blocks until the result is ready or ctx is cancelled.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the result is ready.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

func (api *API) submit(fn func() error) {
	api.group.Go(fn)
}

// Wait blocks until all submitted async work has finished and returns the
// first error any async mutation produced.
func (api *API) Wait() error {
	return api.group.Wait()
}

// InsertOrUpdateAsync saves the entity on the worker pool. Errors are
// logged immediately and surfaced by Wait.
func (api *API) InsertOrUpdateAsync(ctx context.Context, dbName string, instance interface{}) {
	api.submit(func() error {
		if err := api.InsertOrUpdate(ctx, dbName, instance); err != nil {
			api.logger.Error("forestdb: async insert failed:", err)
			return err
		}
		return nil
	})
}

// DeleteAsync removes the entity's row on the worker pool.
func (api *API) DeleteAsync(ctx context.Context, dbName string, instance interface{}) {
	api.submit(func() error {
		if err := api.Delete(ctx, dbName, instance); err != nil {
			api.logger.Error("forestdb: async delete failed:", err)
			return err
		}
		return nil
	})
}

// DeleteAllAsync clears the entity's table on the worker pool.
func (api *API) DeleteAllAsync(ctx context.Context, dbName string, object interface{}) {
	api.submit(func() error {
		if err := api.DeleteAll(ctx, dbName, object); err != nil {
			api.logger.Error("forestdb: async delete all failed:", err)
			return err
		}
		return nil
	})
}

// FindAllAsync runs FindAll on the worker pool and returns a Future for
// the result. Read errors resolve the Future, not Wait.
func FindAllAsync[T any](ctx context.Context, api *API, dbName string) *Future[[]T] {
	future := newFuture[[]T]()
	api.submit(func() error {
		future.complete(FindAll[T](ctx, api, dbName))
		return nil
	})
	return future
}

// FindAllQueryAsync is FindAllQuery on the worker pool.
func FindAllQueryAsync[T any](ctx context.Context, api *API, dbName, query string, args ...interface{}) *Future[[]T] {
	future := newFuture[[]T]()
	api.submit(func() error {
		future.complete(FindAllQuery[T](ctx, api, dbName, query, args...))
		return nil
	})
	return future
}

package bootstrap

import (
	"context"
	"sync"
)

// backgroundJobs runs goroutines that must finish before connections are closed.
type backgroundJobs struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newBackgroundJobs() *backgroundJobs {
	ctx, cancel := context.WithCancel(context.Background())
	return &backgroundJobs{ctx: ctx, cancel: cancel}
}

// Go runs fn with a context cancelled by Stop.
func (j *backgroundJobs) Go(fn func(ctx context.Context)) {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		fn(j.ctx)
	}()
}

// Stop cancels every running job and waits for them to return.
func (j *backgroundJobs) Stop() {
	j.cancel()
	j.wg.Wait()
}

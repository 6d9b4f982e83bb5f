package main

import (
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"

	"natmerge/natsort"
)

// pools are the executors shared by every parallel benchmark run.
//
// The ants pool blocks on Submit, so it only serves natsort rounds, whose
// tasks never submit further work. The recursive baseline uses the
// semaphore, which rejects instead of blocking.
type pools struct {
	ants      *ants.Pool
	semaphore *natsort.SemaphorePool
}

func newPools(workers int) (*pools, error) {
	// a panicking merge must take the process down, otherwise the round
	// waits on a result that never arrives
	p, err := ants.NewPool(workers, ants.WithPanicHandler(func(v interface{}) {
		panic(v)
	}))
	if err != nil {
		return nil, errors.Wrapf(err, "create worker pool of %d", workers)
	}
	return &pools{ants: p, semaphore: natsort.NewSemaphorePool(workers)}, nil
}

func (p *pools) release() {
	p.ants.Release()
}

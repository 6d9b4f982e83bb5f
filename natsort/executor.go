package natsort

import (
	"github.com/pkg/errors"
)

// Executor runs the independent pair merges of a round. *ants.Pool
// satisfies it.
type Executor interface {
	Submit(task func()) error
}

// ErrPoolBusy is returned by a SemaphorePool when every slot is taken.
var ErrPoolBusy = errors.New("natsort: all worker slots busy")

// SemaphorePool bounds the number of concurrently running tasks with a
// buffered channel of tokens. Submit never blocks: when no token is free
// the task is rejected and the caller runs it inline.
type SemaphorePool struct {
	slots chan struct{}
}

// NewSemaphorePool returns a pool allowing size concurrent tasks.
func NewSemaphorePool(size int) *SemaphorePool {
	if size < 1 {
		size = 1
	}
	return &SemaphorePool{slots: make(chan struct{}, size)}
}

// Submit starts task on a new goroutine if a slot is free.
func (p *SemaphorePool) Submit(task func()) error {
	select {
	case p.slots <- struct{}{}:
		go func() {
			defer func() { <-p.slots }()
			task()
		}()
		return nil
	default:
		return ErrPoolBusy
	}
}

// Status reports how many slots are in use and the pool capacity.
func (p *SemaphorePool) Status() (used int, capacity int) {
	return len(p.slots), cap(p.slots)
}

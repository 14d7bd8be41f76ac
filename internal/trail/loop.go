package trail

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop is a single logical thread for platforms where pointer events and
// timers arrive on different goroutines. Every posted task runs on the Run
// goroutine, one at a time, in the order it was posted.
type Loop struct {
	interval time.Duration
	tasks    chan func()
	done     chan struct{}
	doneOnce sync.Once
}

func NewLoop(interval time.Duration) *Loop {
	return &Loop{
		interval: interval,
		tasks:    make(chan func(), 128),
		done:     make(chan struct{}),
	}
}

// Run executes posted tasks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.doneOnce.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-l.tasks:
			task()
		}
	}
}

// Post queues task for the loop goroutine. It reports false once the loop has
// exited. Do not call Post from inside a task.
func (l *Loop) Post(task func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- task:
		return true
	case <-l.done:
		return false
	}
}

// Schedule implements Scheduler with a ticker goroutine that posts tick onto
// the loop. The returned stop may be called from a loop task.
func (l *Loop) Schedule(tick func()) (stop func()) {
	var stopped atomic.Bool
	quit := make(chan struct{})
	var wg sync.WaitGroup

	run := func() {
		if !stopped.Load() {
			tick()
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()

		for {
			select {
			case <-quit:
				return
			case <-l.done:
				return
			case <-ticker.C:
				select {
				case l.tasks <- run:
				case <-quit:
					return
				case <-l.done:
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			stopped.Store(true)
			close(quit)
			wg.Wait()
		})
	}
}

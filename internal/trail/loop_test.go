package trail

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoopRunsTasksInOrder(t *testing.T) {
	l := NewLoop(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	var got []int
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	l.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for tasks")
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("Expected task %d at position %d, got %d", i, i, v)
		}
	}

	cancel()
	if err := <-errCh; err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if l.Post(func() {}) {
		t.Error("Post should fail after the loop exits")
	}
}

func TestLoopScheduleStops(t *testing.T) {
	l := NewLoop(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	var ticks atomic.Int64
	stop := l.Schedule(func() { ticks.Add(1) })

	deadline := time.Now().Add(time.Second)
	for ticks.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ticks.Load() < 3 {
		t.Fatalf("Expected at least 3 ticks, got %d", ticks.Load())
	}

	// stop from the loop goroutine, the way an Effect does on unmount
	stopped := make(chan struct{})
	l.Post(func() {
		stop()
		close(stopped)
	})
	<-stopped
	stop()

	// drain anything queued before the stop
	flushed := make(chan struct{})
	l.Post(func() { close(flushed) })
	<-flushed

	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	if ticks.Load() != after {
		t.Errorf("Ticks continued after stop: %d -> %d", after, ticks.Load())
	}
}

func TestLoopDrivesEffect(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameInterval = time.Millisecond
	l := NewLoop(cfg.FrameInterval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	frames := make(chan []Marker, 256)
	e := NewEffect(cfg, NewChain(cfg), l, RendererFunc(func(m []Marker) {
		select {
		case frames <- m:
		default:
		}
	}), 1024)

	l.Post(e.Mount)
	l.Post(func() { e.PointerMove(50, 50) })

	select {
	case m := <-frames:
		if len(m) != cfg.Length {
			t.Errorf("Expected %d markers, got %d", cfg.Length, len(m))
		}
	case <-time.After(time.Second):
		t.Fatal("No frame rendered")
	}

	unmounted := make(chan struct{})
	l.Post(func() {
		e.Unmount()
		close(unmounted)
	})
	<-unmounted
}

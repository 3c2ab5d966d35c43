package app

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDebouncerSupersedesPending(t *testing.T) {
	d := NewDebouncer(20*time.Millisecond, zap.NewNop())
	defer d.Stop()

	var first, second atomic.Int32
	d.Schedule(func() { first.Add(1) })
	d.Schedule(func() { second.Add(1) })

	time.Sleep(100 * time.Millisecond)

	if first.Load() != 0 {
		t.Error("superseded task must not run")
	}
	if second.Load() != 1 {
		t.Errorf("latest task ran %d times, want 1", second.Load())
	}
}

func TestDebouncerFlushRunsSynchronously(t *testing.T) {
	d := NewDebouncer(time.Hour, zap.NewNop())
	defer d.Stop()

	var ran atomic.Int32
	d.Schedule(func() { ran.Add(1) })

	d.Flush()
	if ran.Load() != 1 {
		t.Fatalf("Flush did not run the pending task")
	}

	// Повторный Flush без запланированной задачи ничего не делает
	d.Flush()
	if ran.Load() != 1 {
		t.Errorf("task ran %d times, want 1", ran.Load())
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(10*time.Millisecond, zap.NewNop())

	var ran atomic.Int32
	d.Schedule(func() { ran.Add(1) })
	d.Stop()

	time.Sleep(50 * time.Millisecond)

	if ran.Load() != 0 {
		t.Error("stopped task must not run")
	}
}

func TestDebouncerRunsAfterDelay(t *testing.T) {
	d := NewDebouncer(10*time.Millisecond, zap.NewNop())
	defer d.Stop()

	done := make(chan struct{})
	d.Schedule(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled task did not run")
	}
}

package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/testersconnect/site/pkg/lifecycle"
)

func TestCoordinator_Startup(t *testing.T) {
	lc := lifecycle.New()
	if lc.Ready() {
		t.Fatal("Ready() = true for new coordinator")
	}

	var count atomic.Int32
	for range 3 {
		lc.OnStartup(func() { count.Add(1) })
	}
	lc.WaitForStartup()

	if count.Load() != 3 {
		t.Errorf("count = %d, want 3", count.Load())
	}
	if !lc.Ready() {
		t.Error("Ready() = false after WaitForStartup")
	}
}

func TestCoordinator_Shutdown(t *testing.T) {
	lc := lifecycle.New()

	var closed atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		closed.Store(true)
	})
	lc.WaitForStartup()

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !closed.Load() {
		t.Error("shutdown hook did not run")
	}
	if lc.Ready() {
		t.Error("Ready() = true after Shutdown")
	}
}

func TestCoordinator_ShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()
	release := make(chan struct{})
	defer close(release)

	lc.OnShutdown(func() { <-release })

	if err := lc.Shutdown(10 * time.Millisecond); err == nil {
		t.Error("Shutdown() error = nil, want timeout")
	}
}

package jobmgr

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStartAsyncIsSingleFlight(t *testing.T) {
	m := NewManager(nil)
	release := make(chan struct{})
	started := make(chan struct{})

	err := m.StartAsync(context.Background(), "sweep", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	<-started

	err = m.StartAsync(context.Background(), "sweep", func(context.Context) error { return nil })
	if !errors.Is(err, ErrRunning) {
		t.Fatalf("second start = %v, want ErrRunning", err)
	}
	if got := m.Status(); got != "Running jobs: sweep" {
		t.Fatalf("status = %q", got)
	}

	close(release)
	m.Wait()
	if len(m.List()) != 0 {
		t.Fatalf("jobs left after Wait: %v", m.List())
	}
	if err := m.StartAsync(context.Background(), "sweep", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("restart after completion: %v", err)
	}
	m.Wait()
}

func TestStopCancelsJob(t *testing.T) {
	m := NewManager(nil)
	done := make(chan error, 1)
	running := make(chan struct{})
	_ = m.StartAsync(context.Background(), "long", func(ctx context.Context) error {
		close(running)
		<-ctx.Done()
		done <- ctx.Err()
		return ctx.Err()
	})
	<-running

	if err := m.Stop("long"); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("job ended with %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("job ignored Stop")
	}
	if err := m.Stop("long"); err == nil {
		t.Fatal("stopping a finished job should fail")
	}
	m.Wait()
}

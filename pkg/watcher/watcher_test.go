package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var callCount atomic.Int32

	for i := 0; i < 10; i++ {
		d.Trigger(func() {
			callCount.Add(1)
		})
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	if count := callCount.Load(); count != 1 {
		t.Errorf("expected 1 callback invocation, got %d", count)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var called atomic.Bool

	d.Trigger(func() {
		called.Store(true)
	})
	d.Cancel()

	time.Sleep(100 * time.Millisecond)

	if called.Load() {
		t.Error("callback should not have been invoked after cancel")
	}
}

func TestDebouncer_DefaultDuration(t *testing.T) {
	d := NewDebouncer(0)
	if d.Duration() != DefaultDebounceDuration {
		t.Errorf("expected default duration %v, got %v", DefaultDebounceDuration, d.Duration())
	}
}

func writeTour(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tour.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitEvent(t *testing.T, w *Watcher, timeout time.Duration) (Event, bool) {
	t.Helper()
	select {
	case e := <-w.Events():
		return e, true
	case <-time.After(timeout):
		return Event{}, false
	}
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	path := writeTour(t, "name: intro\n")

	w, err := NewWatcher(path, WithDebounceDuration(50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("name: intro\nsteps: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	e, ok := waitEvent(t, w, 2*time.Second)
	if !ok {
		t.Fatal("expected change to be detected")
	}
	if e.Err != nil {
		t.Errorf("unexpected error event: %v", e.Err)
	}
	if e.Path != w.Path() {
		t.Errorf("event path = %q, want %q", e.Path, w.Path())
	}
}

func TestWatcher_PollingFallback(t *testing.T) {
	path := writeTour(t, "name: intro\n")

	w, err := NewWatcher(path,
		WithDebounceDuration(50*time.Millisecond),
		WithPollInterval(100*time.Millisecond),
		WithForcePoll(true),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("expected polling mode")
	}

	time.Sleep(150 * time.Millisecond)

	// Size change is enough even on filesystems with coarse mtimes.
	if err := os.WriteFile(path, []byte("name: intro, with a longer body\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, ok := waitEvent(t, w, 2*time.Second); !ok {
		t.Error("expected change to be detected in polling mode")
	}
}

func TestWatcher_EnvForcePolling(t *testing.T) {
	t.Setenv("SPOT_FORCE_POLL", "1")
	path := writeTour(t, "name: intro\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Error("SPOT_FORCE_POLL should force polling mode")
	}
}

func TestWatcher_FileRemoved(t *testing.T) {
	path := writeTour(t, "name: intro\n")

	w, err := NewWatcher(path,
		WithPollInterval(50*time.Millisecond),
		WithForcePoll(true),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	e, ok := waitEvent(t, w, 2*time.Second)
	if !ok {
		t.Fatal("expected removal to be reported")
	}
	if !errors.Is(e.Err, ErrFileRemoved) {
		t.Errorf("err = %v, want ErrFileRemoved", e.Err)
	}
}

func TestWatcher_StartStop(t *testing.T) {
	path := writeTour(t, "name: intro\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	if w.IsStarted() {
		t.Error("watcher should not be started before Start")
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if !w.IsStarted() {
		t.Error("watcher should be started")
	}
	if err := w.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start err = %v, want ErrAlreadyStarted", err)
	}

	w.Stop()
	if w.IsStarted() {
		t.Error("watcher should be stopped")
	}
	w.Stop()
}

func TestWatcher_Path(t *testing.T) {
	w, err := NewWatcher("tour.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(w.Path()) {
		t.Errorf("expected absolute path, got %q", w.Path())
	}
	if filepath.Base(w.Path()) != "tour.yaml" {
		t.Errorf("base = %q, want tour.yaml", filepath.Base(w.Path()))
	}
}

func TestWatcher_WaitCmd(t *testing.T) {
	path := writeTour(t, "name: intro\n")

	w, err := NewWatcher(path, WithDebounceDuration(20*time.Millisecond), WithPollInterval(30*time.Millisecond), WithForcePoll(true))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	done := make(chan any, 1)
	go func() { done <- w.WaitCmd()() }()

	time.Sleep(60 * time.Millisecond)
	if err := os.WriteFile(path, []byte("name: intro\nsteps:\n  - target: hello\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-done:
		if _, ok := msg.(Event); !ok {
			t.Errorf("WaitCmd returned %T, want Event", msg)
		}
	case <-time.After(2 * time.Second):
		t.Error("WaitCmd never returned")
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"YES", true},
		{" on ", true},
		{"0", false},
		{"false", false},
		{"", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		t.Setenv("SPOT_TEST_BOOL", tt.value)
		if got := envBool("SPOT_TEST_BOOL"); got != tt.want {
			t.Errorf("envBool(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

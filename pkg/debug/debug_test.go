package debug

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	wasEnabled := Enabled()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetEnabled(wasEnabled)
		SetOutput(nopWriter{})
	})
	return &buf
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestLogDisabled(t *testing.T) {
	buf := capture(t)
	SetEnabled(false)
	Log("show %s", "sync")
	LogTiming("layout", time.Millisecond)
	LogEnterExit("recompute")()
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

func TestLogEnabled(t *testing.T) {
	buf := capture(t)
	SetEnabled(true)

	Log("show %s", "sync")
	LogIf(false, "hidden")
	LogIf(true, "close %d", 1)
	LogTiming("layout", 2*time.Millisecond)

	out := buf.String()
	for _, want := range []string{prefix, "show sync", "close 1", "layout took 2ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Error("LogIf(false) should not write")
	}
}

func TestLogEnterExit(t *testing.T) {
	buf := capture(t)
	SetEnabled(true)

	LogEnterExit("recompute")()

	out := buf.String()
	if !strings.Contains(out, "-> recompute") || !strings.Contains(out, "<- recompute") {
		t.Errorf("missing enter/exit lines:\n%s", out)
	}
}

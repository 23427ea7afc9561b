// Package ttyguard stops terminal colour probing for runs whose stdout is
// machine-read. Import it for side effects from main.
package ttyguard

import (
	"os"
	"strings"
)

// init runs before main, so before lipgloss/termenv first query the terminal.
//
// Background-colour detection writes OSC/DSR queries to stdout, which
// corrupts --layout-json output and snapshot runs piped into other tools.
// termenv skips the probe when CI is set.
func init() {
	if os.Getenv("CI") != "" {
		return
	}
	if !shouldSuppressTTYQueries(os.Args, os.Getenv("SPOT_TEST_MODE") != "") {
		return
	}
	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envTest bool) bool {
	if envTest {
		return true
	}
	for _, arg := range args {
		name, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		switch name {
		case "layout-json", "snapshot", "version", "help", "metrics":
			return true
		}
	}
	return false
}

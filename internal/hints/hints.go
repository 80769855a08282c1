// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted as "\n  hint: <text>" so they can be appended to
// error messages printed by missionctl.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/mission-control/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for headless Chrome connection errors
// raised by `missionctl render --pdf`.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}

	return formatHints(hints)
}

// ForConfigNotFound suggests --config or creating a file in the user config
// directory, picked from the paths that were searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "missionctl") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForAddressInUse returns a hint for listen failures.
func ForAddressInUse(addr string) string {
	return format("another process is listening on " + addr + "; use --addr or MISSIONCTL_ADDR")
}

// ForDataDir returns a hint for dataset loading failures.
func ForDataDir() string {
	return format("the data directory needs activities.json and scheduled.json; omit --data-dir to use the bundled dataset")
}

// ForUnknownExplainer lists known explainer ids.
func ForUnknownExplainer(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return format("known explainers: " + strings.Join(ids, ", "))
}

// ForStyleNotFound lists the bundled styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTimeout suggests a longer render timeout.
func ForTimeout() string {
	return format("raise render.timeout in the config file for large documents")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

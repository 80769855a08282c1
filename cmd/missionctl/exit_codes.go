package main

import (
	"errors"
	"os"

	missioncontrol "github.com/alnah/mission-control"
	"github.com/alnah/mission-control/internal/assets"
	"github.com/alnah/mission-control/internal/config"
	"github.com/alnah/mission-control/internal/dashboard"
	"github.com/alnah/mission-control/internal/dateutil"
	"github.com/alnah/mission-control/internal/logging"
	"github.com/alnah/mission-control/internal/server"
)

// Exit codes for the missionctl CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Data files, listen address, output files
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, missioncontrol.ErrBrowserConnect) ||
		errors.Is(err, missioncontrol.ErrPageCreate) ||
		errors.Is(err, missioncontrol.ErrPageLoad) ||
		errors.Is(err, missioncontrol.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, server.ErrListen) ||
		errors.Is(err, dashboard.ErrMissingData) ||
		errors.Is(err, dashboard.ErrInvalidData) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, dashboard.ErrExplainerNotFound) ||
		errors.Is(err, dashboard.ErrWatchUnavailable) ||
		errors.Is(err, missioncontrol.ErrEmptyMarkdown) ||
		errors.Is(err, missioncontrol.ErrUnknownEngine) ||
		errors.Is(err, missioncontrol.ErrStyleNotFound) ||
		errors.Is(err, missioncontrol.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	return ExitGeneral
}

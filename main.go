package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudposse/driftwatch/cmd"
	errUtils "github.com/cloudposse/driftwatch/errors"
	log "github.com/cloudposse/driftwatch/pkg/logger"
)

func main() {
	// Set up signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		// Clean up resources before exit.
		cmd.Cleanup()
		// Exit with correct POSIX exit code (128 + signal number).
		// Use errUtils.OsExit to allow test interception (Go 1.25+ panics on os.Exit in tests).
		if s, ok := sig.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(s))
		}
		// Fallback to SIGINT exit code if signal type assertion fails.
		errUtils.OsExit(130)
	}()

	// Run the application and exit with the appropriate code.
	// Use errUtils.OsExit to allow test interception (Go 1.25+ panics on os.Exit in tests).
	errUtils.OsExit(run())
}

// run executes the main application logic and returns an exit code.
// This separation allows proper cleanup via defer before os.Exit in main().
func run() int {
	// Ensure cleanup happens on normal exit.
	defer cmd.Cleanup()

	err := cmd.Execute()
	if err != nil {
		// Capture error to Sentry if configured (safe to call even if Sentry not initialized).
		errUtils.CaptureError(err)

		// Format and print error using centralized formatter.
		errUtils.CheckErrorAndPrint(err)

		// Extract and use the correct exit code.
		exitCode := errUtils.GetExitCode(err)
		log.Debug("Exiting with exit code", "code", exitCode)
		return exitCode
	}

	return 0
}

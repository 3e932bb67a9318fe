package errors

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/cloudposse/driftwatch/pkg/schema"
)

const (
	// CloseSentryTimeout is the timeout for flushing Sentry events before shutdown.
	CloseSentryTimeout = 2 * time.Second
)

// initialized tracks whether sentry.Init succeeded, so CaptureError and
// CloseSentry stay no-ops when reporting is disabled.
var initialized bool

// InitializeSentry initializes the Sentry SDK with the provided configuration.
// Reporting is disabled when config is nil, disabled, or has no DSN.
func InitializeSentry(config *schema.SentryConfig) error {
	if config == nil || !config.Enabled || config.DSN == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              config.DSN,
		Environment:      config.Environment,
		Release:          config.Release,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}

	initialized = true
	return nil
}

// CloseSentry flushes any pending Sentry events and closes the client.
func CloseSentry() {
	if !initialized {
		return
	}
	sentry.Flush(CloseSentryTimeout)
}

// CaptureError captures an error and sends it to Sentry using
// cockroachdb/errors native support. BuildSentryReport handles PII-free
// reporting, stack traces, and safe details.
func CaptureError(err error) {
	if err == nil || !initialized {
		return
	}

	event, extraDetails := errors.BuildSentryReport(err)

	hub := sentry.CurrentHub()
	hub.WithScope(func(scope *sentry.Scope) {
		for key, value := range extraDetails {
			if contextMap, ok := value.(map[string]interface{}); ok {
				scope.SetContext(key, contextMap)
			}
		}

		hub.CaptureEvent(event)
	})
}

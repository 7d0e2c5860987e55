package domain

import "errors"

// Provider failure taxonomy. These never reach the engine's public entry
// point (the caller degrades to the deterministic path), but typed errors
// keep "no signal" distinguishable from "provider broke" in logs and metrics.
var (
	// ErrProviderUnavailable covers transport failures: timeouts, non-2xx
	// responses, misconfigured credentials discovered at call time.
	ErrProviderUnavailable = errors.New("ai provider unavailable")

	// ErrProviderResponse covers responses that arrived but could not be
	// used: non-JSON bodies, missing content, empty choice lists.
	ErrProviderResponse = errors.New("unusable ai provider response")
)

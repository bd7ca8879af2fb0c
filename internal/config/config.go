// Package config holds the immutable runtime configuration for the proxy.
// Everything is resolved from the environment once at cold start; nothing
// is mutated afterwards.
package config

import "time"

// Defaults for every tunable. The limits mirror what the upstream service
// tolerates; the retry budget is deliberately small because the caller is
// an interactive client waiting on the response.
const (
	DefaultUpstreamURL    = "https://translate.argosopentech.com/translate"
	DefaultAttemptTimeout = 10 * time.Second
	DefaultMaxAttempts    = 2
	DefaultRetryBaseDelay = 300 * time.Millisecond
	DefaultMaxTextLength  = 20000
	DefaultTargetLanguage = "en"
)

// Config is the process-wide configuration for the translate proxy.
type Config struct {
	// UpstreamURL is the translation endpoint every request is proxied to.
	UpstreamURL string

	// AttemptTimeout bounds a single outbound call; on expiry the in-flight
	// request is aborted and counted as a network failure.
	AttemptTimeout time.Duration

	// MaxAttempts is the total attempt budget shared by network failures
	// and retryable 5xx responses.
	MaxAttempts int

	// RetryBaseDelay is multiplied by the attempt number before each retry.
	RetryBaseDelay time.Duration

	// MaxTextLength is the longest text accepted for translation.
	MaxTextLength int

	// TargetLanguage is used when the caller does not name one.
	TargetLanguage string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load builds a Config from the environment, falling back to defaults for
// anything unset or unparseable.
func Load() *Config {
	return &Config{
		UpstreamURL:    getEnvString("UPSTREAM_URL", DefaultUpstreamURL),
		AttemptTimeout: getEnvDuration("ATTEMPT_TIMEOUT_MS", DefaultAttemptTimeout),
		MaxAttempts:    getEnvPositiveInt("MAX_RETRIES", DefaultMaxAttempts),
		RetryBaseDelay: getEnvDuration("RETRY_BASE_DELAY_MS", DefaultRetryBaseDelay),
		MaxTextLength:  getEnvPositiveInt("MAX_TEXT_LENGTH", DefaultMaxTextLength),
		TargetLanguage: getEnvString("DEFAULT_TARGET_LANG", DefaultTargetLanguage),
		LogLevel:       getEnvString("LOG_LEVEL", "info"),
	}
}

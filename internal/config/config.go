package config

import (
	"time"
)

// Default values applied to zero fields after all sources are merged.
const (
	// DefaultUpdateThrottle is the minimum interval between accepted
	// streaming updates for one session.
	DefaultUpdateThrottle = 100 * time.Millisecond

	// DefaultRequestTimeout bounds every outbound API call.
	DefaultRequestTimeout = 30 * time.Second
)

// StructuredConfig is the top-level configuration container for larkstream.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the application credentials and deployment domain used for
	// the tenant token exchange.
	App App `envPrefix:"APP_"`

	// Stream holds the streaming session settings: recipient identity and
	// the update throttle window.
	Stream Stream `envPrefix:"STREAM_"`

	// Adapter holds settings of the outbound HTTP transport.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the per-account application identity.
type App struct {
	// AccountID names the account the credentials belong to. Used as the
	// client cache key and in error messages.
	// Env: APP_ACCOUNT_ID
	AccountID string `env:"ACCOUNT_ID"`

	// AppID is the application identifier issued by the platform.
	// Env: APP_ID
	AppID string `env:"ID"`

	// AppSecret is the application secret used for the token exchange.
	// Must be kept confidential.
	// Env: APP_SECRET
	AppSecret string `env:"SECRET"`

	// Domain selects the deployment: "feishu", "lark", or a base URL of a
	// private deployment. Empty means the default public deployment.
	// Env: APP_DOMAIN
	Domain string `env:"DOMAIN"`
}

// Stream holds streaming session settings.
type Stream struct {
	// ReceiveID is the recipient identifier the live card is sent to.
	// Env: STREAM_RECEIVE_ID
	ReceiveID string `env:"RECEIVE_ID"`

	// ReceiveIDType tells the message endpoint how to interpret ReceiveID
	// (open_id, chat_id, user_id, union_id, email).
	// Env: STREAM_RECEIVE_ID_TYPE
	ReceiveIDType string `env:"RECEIVE_ID_TYPE"`

	// UpdateThrottle is the minimum interval between accepted updates
	// (e.g. "100ms", "1s"). Zero selects [DefaultUpdateThrottle].
	// Env: STREAM_UPDATE_THROTTLE
	UpdateThrottle time.Duration `env:"UPDATE_THROTTLE"`
}

// Adapter holds configuration of the outbound HTTP transport layer.
type Adapter struct {
	// RequestTimeout is the maximum duration allowed for a single outbound
	// request (e.g. "30s", "1m"). Zero selects [DefaultRequestTimeout].
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// applyDefaults fills zero-valued optional fields after merging.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Stream.UpdateThrottle == 0 {
		cfg.Stream.UpdateThrottle = DefaultUpdateThrottle
	}
	if cfg.Stream.ReceiveIDType == "" {
		cfg.Stream.ReceiveIDType = "open_id"
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.AppID == "" || cfg.App.AppSecret == "" {
		account := cfg.App.AccountID
		if account == "" {
			account = "default"
		}
		return fmt.Errorf("%w: account %q", ErrMissingAppCredentials, account)
	}

	if cfg.Stream.UpdateThrottle < 0 {
		return ErrInvalidStreamConfigs
	}

	if cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

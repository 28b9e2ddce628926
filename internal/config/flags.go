package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-account-id account name the credentials belong to
//	-app-id application identifier
//	-app-secret application secret
//	-domain deployment domain ("feishu", "lark", or a base URL)
//	-receive-id recipient identifier for the demo streamer
//	-receive-id-type recipient id type (open_id, chat_id, ...)
//	-throttle minimum interval between accepted updates (e.g., "100ms")
//	-request-timeout outbound request timeout (e.g., "30s", "1m")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var accountID string
	var appID string
	var appSecret string
	var domain string
	var receiveID string
	var receiveIDType string
	var updateThrottle time.Duration
	var requestTimeout time.Duration
	var jsonConfigPath string

	flag.StringVar(&accountID, "account-id", "", "Account the credentials belong to")
	flag.StringVar(&appID, "app-id", "", "Application identifier")
	flag.StringVar(&appSecret, "app-secret", "", "Application secret")
	flag.StringVar(&domain, "domain", "", "Deployment domain (feishu, lark, or base URL)")
	flag.StringVar(&receiveID, "receive-id", "", "Recipient identifier")
	flag.StringVar(&receiveIDType, "receive-id-type", "", "Recipient id type (open_id, chat_id, ...)")
	flag.DurationVar(&updateThrottle, "throttle", 0, "Update throttle window (e.g., 100ms)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			AccountID: accountID,
			AppID:     appID,
			AppSecret: appSecret,
			Domain:    domain,
		},
		Stream: Stream{
			ReceiveID:      receiveID,
			ReceiveIDType:  receiveIDType,
			UpdateThrottle: updateThrottle,
		},
		Adapter: Adapter{
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

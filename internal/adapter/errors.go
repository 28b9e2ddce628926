package adapter

import "errors"

var (
	// ErrAuth indicates the token exchange endpoint rejected the application
	// credentials or returned no token. Never retried automatically.
	ErrAuth = errors.New("token exchange rejected")

	// ErrRemoteAPI indicates a card or message endpoint returned a non-zero
	// status code or an unexpected HTTP status.
	ErrRemoteAPI = errors.New("remote api rejected request")
)

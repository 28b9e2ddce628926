package models

// BaseResponse is the envelope every OpenAPI endpoint wraps its reply in.
// Code zero means success; anything else is a remote-side rejection and Msg
// carries the human-readable reason.
type BaseResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// OK reports whether the remote surface accepted the request.
func (r BaseResponse) OK() bool {
	return r.Code == 0
}

// TokenResponse is the reply of the tenant token exchange. Expire is the TTL
// in seconds; when the server omits it the caller applies a default.
type TokenResponse struct {
	BaseResponse
	TenantAccessToken string `json:"tenant_access_token"`
	Expire            int    `json:"expire"`
}

// CardCreateResponse is the reply of the card entity creation call.
type CardCreateResponse struct {
	BaseResponse
	Data struct {
		CardID string `json:"card_id"`
	} `json:"data"`
}

// MessageCreateResponse is the reply of the interactive message send call.
type MessageCreateResponse struct {
	BaseResponse
	Data struct {
		MessageID string `json:"message_id"`
	} `json:"data"`
}

// MutationResponse is the reply of content and settings mutations. The data
// object is not interesting to this layer; only the envelope is inspected.
type MutationResponse struct {
	BaseResponse
}

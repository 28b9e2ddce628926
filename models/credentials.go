package models

// Credentials identifies one application on one deployment domain. A pair of
// Credentials values is comparable with ==; the client cache relies on that to
// detect credential rotation under a stable account id.
type Credentials struct {
	// AppID is the application identifier issued by the platform.
	AppID string `json:"app_id"`

	// AppSecret is the application secret used for the token exchange.
	AppSecret string `json:"app_secret"`

	// Domain selects the deployment the application lives on. See
	// [ResolveDomain] for accepted values. Never serialized.
	Domain string `json:"-"`
}

// CacheKey returns the composite key the token cache stores entries under.
// Tokens are scoped per deployment, so the domain is part of the key.
func (c Credentials) CacheKey() string {
	return c.Domain + "|" + c.AppID
}

// Complete reports whether both AppID and AppSecret are present.
func (c Credentials) Complete() bool {
	return c.AppID != "" && c.AppSecret != ""
}

package models

import "strings"

// Well-known deployment domains for the card-rendering OpenAPI surface.
// Anything else passed as a domain is treated as a private deployment base URL
// if it looks like one, otherwise the default public deployment is used.
const (
	DomainFeishu = "feishu"
	DomainLark   = "lark"
)

const (
	feishuBaseURL = "https://open.feishu.cn/open-apis"
	larkBaseURL   = "https://open.larksuite.com/open-apis"
)

// ResolveDomain maps a configured domain selector to the OpenAPI base URL all
// requests for that deployment are issued against.
//
// Resolution rules:
//   - "lark" selects the international deployment;
//   - "feishu" or an empty selector selects the default public deployment;
//   - an explicit http(s) URL is used as-is for private deployments
//     (trailing slashes trimmed);
//   - any other value falls back to the default public deployment.
func ResolveDomain(domain string) string {
	domain = strings.TrimSpace(domain)

	switch {
	case domain == DomainLark:
		return larkBaseURL
	case domain == DomainFeishu, domain == "":
		return feishuBaseURL
	case strings.HasPrefix(domain, "http://"), strings.HasPrefix(domain, "https://"):
		return strings.TrimRight(domain, "/")
	default:
		return feishuBaseURL
	}
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDomain(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		want   string
	}{
		{name: "feishu selector", domain: "feishu", want: "https://open.feishu.cn/open-apis"},
		{name: "lark selector", domain: "lark", want: "https://open.larksuite.com/open-apis"},
		{name: "empty defaults to feishu", domain: "", want: "https://open.feishu.cn/open-apis"},
		{name: "explicit https url kept", domain: "https://lark.example.com/open-apis", want: "https://lark.example.com/open-apis"},
		{name: "trailing slashes trimmed", domain: "https://lark.example.com/open-apis///", want: "https://lark.example.com/open-apis"},
		{name: "explicit http url kept", domain: "http://localhost:8080/open-apis", want: "http://localhost:8080/open-apis"},
		{name: "unknown selector falls back", domain: "dingtalk", want: "https://open.feishu.cn/open-apis"},
		{name: "surrounding whitespace ignored", domain: "  lark  ", want: "https://open.larksuite.com/open-apis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDomain(tt.domain))
		})
	}
}

func TestCredentials_CacheKeyScopedByDomain(t *testing.T) {
	feishu := Credentials{AppID: "cli_abc", AppSecret: "shh", Domain: "feishu"}
	lark := Credentials{AppID: "cli_abc", AppSecret: "shh", Domain: "lark"}

	assert.NotEqual(t, feishu.CacheKey(), lark.CacheKey())
}

func TestCredentials_Complete(t *testing.T) {
	assert.True(t, Credentials{AppID: "cli_abc", AppSecret: "shh"}.Complete())
	assert.False(t, Credentials{AppID: "cli_abc"}.Complete())
	assert.False(t, Credentials{AppSecret: "shh"}.Complete())
}

package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/livecard/larkstream/models"
)

// mapAPIError converts a transport-level or envelope-level rejection into a
// wrapped [ErrRemoteAPI]. The HTTP status is checked first because resty only
// decodes the result envelope on 2xx responses.
func mapAPIError(resp *resty.Response, env models.BaseResponse) error {
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		body := strings.TrimSpace(string(resp.Body()))
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("%w: http %d: %s", ErrRemoteAPI, resp.StatusCode(), body)
	}

	if !env.OK() {
		return fmt.Errorf("%w: code %d: %s", ErrRemoteAPI, env.Code, env.Msg)
	}

	return nil
}

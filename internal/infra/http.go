package infra

import (
	"net/http"

	"exusiai.dev/todoist-readme/internal/app/appconfig"
)

// HTTPClient is the client used to reach the Todoist API. The timeout bounds
// each attempt; retries are layered on top by the caller.
func HTTPClient(conf *appconfig.Config) *http.Client {
	return &http.Client{
		Timeout: conf.RequestTimeout,
	}
}

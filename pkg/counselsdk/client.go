package counselsdk

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to one counsellor API. It is safe for concurrent use but
// holds a single user's session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client with its own cookie jar. baseURL includes the
// API prefix, if the server uses one.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

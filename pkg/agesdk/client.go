package agesdk

import (
	"net/http"
	"strings"
	"time"
)

// Client is a client for the public endpoints of the age verification
// service. Use Admin to obtain a client for the bearer protected lookups.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a 10 second timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AdminClient performs lookups that require the admin bearer token.
type AdminClient struct {
	client *Client
	token  string
}

// Admin returns an AdminClient sharing c's base URL and HTTP client.
func (c *Client) Admin(token string) *AdminClient {
	return &AdminClient{client: c, token: token}
}

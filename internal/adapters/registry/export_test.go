package registry

import "net/http"

// NewClientWithHTTP exposes the test constructor accepting a custom http client.
func NewClientWithHTTP(baseURL string, client *http.Client) *Client {
	return newClientWithHTTP(baseURL, client)
}

package trello

import "net/url"

const authorizeEndpoint = "https://trello.com/1/authorize"

// AuthorizeURL returns the page where a user grants chewy a read-only,
// non-expiring token for cfg.Key.
func AuthorizeURL(cfg Config) string {
	q := url.Values{}
	q.Set("expiration", "never")
	q.Set("name", cfg.AppName)
	q.Set("scope", "read")
	q.Set("response_type", "token")
	q.Set("key", cfg.Key)
	return authorizeEndpoint + "?" + q.Encode()
}

// WithToken returns a copy of cfg using token.
func (c Config) WithToken(token string) Config {
	c.Token = token
	return c
}

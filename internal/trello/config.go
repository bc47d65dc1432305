package trello

import "time"

// Config holds the settings of the Trello REST client.
type Config struct {
	Key      string
	Token    string
	Endpoint string
	AppName  string
	Timeout  time.Duration

	// CacheAll routes every GET through the response cache instead of only
	// the calls that describe boards.
	CacheAll bool
}

// DefaultConfig returns a Config pointing at the public Trello API.
// Key and token must still be supplied.
func DefaultConfig() Config {
	return Config{
		Endpoint: "https://api.trello.com/1",
		AppName:  "Chewy",
		Timeout:  10 * time.Second,
	}
}

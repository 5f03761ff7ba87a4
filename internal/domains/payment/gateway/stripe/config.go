package stripe

import "time"

// Config for the hosted checkout API.
type Config struct {
	SecretKey  string
	APIURL     string // e.g. https://api.stripe.com
	SuccessURL string
	CancelURL  string
	Timeout    time.Duration
}

func (c *Config) sessionsURL() string {
	return c.APIURL + "/v1/checkout/sessions"
}

func (c *Config) sessionURL(id string) string {
	return c.APIURL + "/v1/checkout/sessions/" + id
}

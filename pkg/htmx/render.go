package htmx

import (
	"net/http"
	"strings"
)

// Config collects response headers for an htmx render.
type Config struct {
	PushURL  string
	Retarget string
	Reswap   SwapStrategy
	Triggers []string
}

// RenderOption sets a response header for htmx renders.
type RenderOption func(*Config)

func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders writes the configured headers. It must run before
// WriteHeader.
func (c *Config) ApplyHeaders(w http.ResponseWriter) {
	if c == nil {
		return
	}
	h := w.Header()
	if c.PushURL != "" {
		h.Set(HeaderHXPushURL, c.PushURL)
	}
	if c.Retarget != "" {
		h.Set(HeaderHXRetarget, c.Retarget)
	}
	if c.Reswap != "" {
		h.Set(HeaderHXReswap, string(c.Reswap))
	}
	if len(c.Triggers) > 0 {
		h.Set(HeaderHXTrigger, strings.Join(c.Triggers, ", "))
	}
}

// WithPushURL records url in the browser history after the swap.
func WithPushURL(url string) RenderOption {
	return func(c *Config) { c.PushURL = url }
}

// WithRetarget swaps into selector instead of the requested target.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) { c.Retarget = selector }
}

func WithReswap(s SwapStrategy) RenderOption {
	return func(c *Config) { c.Reswap = s }
}

// WithTrigger fires client-side events after the response arrives.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) { c.Triggers = append(c.Triggers, events...) }
}

package rollcall

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/kindergarten/rollcall/internal/transport"
	"github.com/kindergarten/rollcall/pkg/constants"
	"github.com/kindergarten/rollcall/pkg/errors"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000/"

// Option is a function that configures a Client.
type Option func(*options) error

// options holds the client configuration.
type options struct {
	baseURL     string
	tokens      transport.TokenSource
	tokenType   string
	httpClient  *http.Client
	timeout     time.Duration
	rosterLimit int
	logger      *zerolog.Logger
	userAgent   string
}

// defaults returns the default client options.
func defaults() *options {
	return &options{
		baseURL:     DefaultBaseURL,
		timeout:     constants.DefaultHTTPTimeout,
		rosterLimit: constants.RosterPageSize,
		userAgent:   constants.AppName,
	}
}

// apply applies the given options in order.
func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithBaseURL configures the API root, e.g. "https://kg.example.com/".
func WithBaseURL(url string) Option {
	return func(o *options) error {
		if url == "" {
			return errors.NewValidationError("base_url", url, "must not be empty")
		}
		o.baseURL = url
		return nil
	}
}

// WithToken authenticates every request with a fixed access token.
func WithToken(token string) Option {
	return func(o *options) error {
		o.tokens = transport.StaticToken(token)
		return nil
	}
}

// WithTokenSource reads the access token before every request.
func WithTokenSource(ts transport.TokenSource) Option {
	return func(o *options) error {
		o.tokens = ts
		return nil
	}
}

// WithTokenType sets the Authorization scheme reported by the token
// endpoint. Defaults to Bearer.
func WithTokenType(tokenType string) Option {
	return func(o *options) error {
		o.tokenType = tokenType
		return nil
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		o.httpClient = hc
		return nil
	}
}

// WithHTTPTimeout sets the per-request timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return errors.NewValidationError("http_timeout", d, "must be positive")
		}
		o.timeout = d
		return nil
	}
}

// WithRosterLimit sets how many children are requested per roster.
func WithRosterLimit(limit int) Option {
	return func(o *options) error {
		if limit <= 0 {
			return errors.NewValidationError("roster_limit", limit, "must be positive")
		}
		o.rosterLimit = limit
		return nil
	}
}

// WithLogger sets the logger used by reconcilers created by the client.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) error {
		o.userAgent = ua
		return nil
	}
}

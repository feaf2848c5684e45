package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/mnehpets/utilserve/endpoint"
)

// SecurityHeadersProcessor sets response headers suited to a JSON API.
//
// Defaults (NewSecurityHeadersProcessor):
//   - X-Content-Type-Options: nosniff
//   - Referrer-Policy: no-referrer
//   - X-Frame-Options: DENY
//   - Content-Security-Policy: default-src 'none'; frame-ancestors 'none'
//   - Cross-Origin-Resource-Policy: same-origin (cross-origin when CORS is on)
//   - Cache-Control: no-store
//
// HSTS is off by default because the service is usually reached over plain
// HTTP behind a TLS-terminating proxy; enable it with WithHSTS.
//
// When CORS is configured, preflight (OPTIONS) requests are answered with
// 204 directly.
type SecurityHeadersProcessor struct {
	// Headers are set verbatim on every response. An empty value removes the
	// default.
	Headers map[string]string

	// HSTS configures the Strict-Transport-Security header. nil disables it.
	HSTS *HSTSConfig

	// CORS configures Cross-Origin Resource Sharing headers. nil disables it.
	CORS *CORSConfig
}

// HSTSConfig configures HTTP Strict Transport Security.
type HSTSConfig struct {
	// MaxAge is in seconds.
	MaxAge            int
	IncludeSubDomains bool
}

// CORSConfig configures Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	// AllowedOrigins lists exact origins, or "*" for any.
	AllowedOrigins []string
	// AllowedMethods defaults to GET, OPTIONS.
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	// MaxAge is how long, in seconds, preflight results may be cached.
	MaxAge int
}

// SecurityHeadersOption is a functional option for configuring SecurityHeadersProcessor.
type SecurityHeadersOption func(*SecurityHeadersProcessor)

// NewSecurityHeadersProcessor creates a SecurityHeadersProcessor with API defaults.
func NewSecurityHeadersProcessor(opts ...SecurityHeadersOption) *SecurityHeadersProcessor {
	p := &SecurityHeadersProcessor{
		Headers: map[string]string{
			"X-Content-Type-Options":       "nosniff",
			"Referrer-Policy":              "no-referrer",
			"X-Frame-Options":              "DENY",
			"Content-Security-Policy":      "default-src 'none'; frame-ancestors 'none'",
			"Cross-Origin-Resource-Policy": "same-origin",
			"Cache-Control":                "no-store",
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.CORS != nil && p.Headers["Cross-Origin-Resource-Policy"] == "same-origin" {
		p.Headers["Cross-Origin-Resource-Policy"] = "cross-origin"
	}
	return p
}

// WithHSTS enables Strict-Transport-Security.
func WithHSTS(maxAge int, includeSubDomains bool) SecurityHeadersOption {
	return func(p *SecurityHeadersProcessor) {
		p.HSTS = &HSTSConfig{MaxAge: maxAge, IncludeSubDomains: includeSubDomains}
	}
}

// WithHeader overrides (or, with an empty value, removes) a default header.
func WithHeader(name, value string) SecurityHeadersOption {
	return func(p *SecurityHeadersProcessor) {
		p.Headers[http.CanonicalHeaderKey(name)] = value
	}
}

// WithCORS configures CORS headers for cross-origin access. A config with no
// allowed origins leaves CORS disabled.
func WithCORS(config *CORSConfig) SecurityHeadersOption {
	return func(p *SecurityHeadersProcessor) {
		if config == nil || len(config.AllowedOrigins) == 0 {
			p.CORS = nil
			return
		}
		p.CORS = config
	}
}

// Process implements endpoint.Processor.
func (p *SecurityHeadersProcessor) Process(w http.ResponseWriter, r *http.Request, next func(http.ResponseWriter, *http.Request) error) error {
	h := w.Header()
	for name, value := range p.Headers {
		if value != "" {
			h.Set(name, value)
		}
	}
	if hsts := formatHSTS(p.HSTS); hsts != "" {
		h.Set("Strict-Transport-Security", hsts)
	}

	if p.CORS != nil {
		setCORSHeaders(w, r, p.CORS)

		// A preflight request is an OPTIONS request with an Origin and
		// Access-Control-Request-Method.
		if r.Method == http.MethodOptions &&
			r.Header.Get("Origin") != "" &&
			r.Header.Get("Access-Control-Request-Method") != "" {
			return endpoint.Error(http.StatusNoContent, "", nil)
		}
	}

	return next(w, r)
}

func formatHSTS(config *HSTSConfig) string {
	if config == nil || config.MaxAge <= 0 {
		return ""
	}
	v := "max-age=" + strconv.Itoa(config.MaxAge)
	if config.IncludeSubDomains {
		v += "; includeSubDomains"
	}
	return v
}

func setCORSHeaders(w http.ResponseWriter, r *http.Request, config *CORSConfig) {
	// Only cross-origin requests carry an Origin header.
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}
	h := w.Header()
	h.Add("Vary", "Origin")

	switch {
	case slices.Contains(config.AllowedOrigins, "*"):
		h.Set("Access-Control-Allow-Origin", "*")
	case slices.Contains(config.AllowedOrigins, origin):
		h.Set("Access-Control-Allow-Origin", origin)
	default:
		return
	}

	if len(config.ExposedHeaders) > 0 {
		h.Set("Access-Control-Expose-Headers", strings.Join(config.ExposedHeaders, ", "))
	}

	if r.Method != http.MethodOptions {
		return
	}
	methods := config.AllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodOptions}
	}
	h.Set("Access-Control-Allow-Methods", strings.Join(methods, ", "))
	if len(config.AllowedHeaders) > 0 {
		h.Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
	}
	if config.MaxAge > 0 {
		h.Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
	}
}

var _ endpoint.Processor = (*SecurityHeadersProcessor)(nil)

package middleware

import (
	"fmt"
	"net/http"

	"github.com/mnehpets/utilserve/endpoint"
)

// DefaultMaxRequestLine is the longest request line accepted by default.
const DefaultMaxRequestLine = 2048

// RequestLineLength is the length of "METHOD SP request-target SP HTTP-version"
// as sent by the client.
func RequestLineLength(r *http.Request) int {
	target := r.RequestURI
	if target == "" && r.URL != nil {
		target = r.URL.RequestURI()
	}
	return len(r.Method) + 1 + len(target) + 1 + len(r.Proto)
}

// RequestLineLimit returns a processor that rejects requests whose request
// line is longer than max with 414 URI Too Long. max <= 0 selects
// DefaultMaxRequestLine.
func RequestLineLimit(max int) endpoint.Processor {
	if max <= 0 {
		max = DefaultMaxRequestLine
	}
	return endpoint.ProcessorFunc(func(w http.ResponseWriter, r *http.Request, next func(http.ResponseWriter, *http.Request) error) error {
		if n := RequestLineLength(r); n > max {
			return endpoint.Error(http.StatusRequestURITooLong, "URI muito longa",
				fmt.Errorf("request line is %d bytes, limit %d", n, max))
		}
		return next(w, r)
	})
}

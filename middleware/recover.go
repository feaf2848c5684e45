package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/mnehpets/utilserve/endpoint"
	"github.com/mnehpets/utilserve/logger"
)

// Recover returns a processor that turns a panic anywhere downstream
// (later processors, decoding, the endpoint or its renderer) into a 500.
// The panic value and stack are logged; the client only sees the generic
// status text.
func Recover(log *logger.Logger) endpoint.Processor {
	if log == nil {
		log = logger.NewNop()
	}
	return endpoint.ProcessorFunc(func(w http.ResponseWriter, r *http.Request, next func(http.ResponseWriter, *http.Request) error) (err error) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.With(
				"request_id", RequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
			).Error("panic recovered")
			err = endpoint.Error(http.StatusInternalServerError, "", fmt.Errorf("panic: %v", rec))
		}()
		return next(w, r)
	})
}

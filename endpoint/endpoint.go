// Package endpoint provides a type-safe abstraction for building HTTP handlers.
//
// The core pattern separates the request decoding, business logic, and response
// rendering into distinct phases:
//
//  1. Unmarshal: The EndpointHandler decodes the request (path, query, headers)
//     into a typed parameters struct using struct tags.
//  2. Endpoint: The EndpointFunc receives the decoded parameters and the request,
//     executes business logic, and returns a Renderer. It does not write to the
//     response directly.
//  3. Render: The returned Renderer writes the status code, headers, and body
//     to the http.ResponseWriter.
//
// Processors can be chained as middleware to intercept requests before they reach
// the EndpointFunc.
//
// Failures from any phase are turned into a response by the handler's
// ErrorRenderer. If rendering fails before anything was written, the handler
// falls back to a plain-text 500.
//
// Supported Renderers:
//   - JSONRenderer: Serializes a value as JSON.
//   - CBORRenderer: Serializes a value as CBOR.
//   - StringRenderer: Writes a plain string.
//   - NoContentRenderer: Writes a status code with no body.
package endpoint

import (
	"errors"
	"io"
	"net/http"
)

// EndpointError is a client-visible error that maps directly to an HTTP status code.
//
// The handler wrapper uses this to translate returned Go errors into HTTP
// responses.
type EndpointError struct {
	Status int
	// Message is a short, human-readable description suitable for an HTTP error body.
	Message string
	Cause   error
}

func (e *EndpointError) Error() string {
	if e == nil {
		return "endpoint: error: <nil>"
	}
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
		if msg == "" {
			msg = "unknown error"
		}
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *EndpointError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Error creates a new EndpointError.
func Error(status int, message string, err error) error {
	return newEndpointError(status, message, err)
}

func newEndpointError(status int, message string, err error) error {
	// Avoid double-wrapping.
	var ee *EndpointError
	if errors.As(err, &ee) {
		return err
	}
	return &EndpointError{Status: status, Message: message, Cause: err}
}

// StatusOf returns the HTTP status and client-visible message for err.
//
// Errors that are not EndpointErrors map to 500 with the generic status text;
// their details are never exposed.
func StatusOf(err error) (int, string) {
	status := http.StatusInternalServerError
	var ee *EndpointError
	if !errors.As(err, &ee) || ee == nil {
		return status, http.StatusText(status)
	}
	if ee.Status >= 100 {
		status = ee.Status
	}
	if ee.Message == "" || status == http.StatusInternalServerError {
		return status, http.StatusText(status)
	}
	return status, ee.Message
}

// Renderers are values that write a response into an http.ResponseWriter.
//
// Protocol:
//   - Renderers MUST call w.WriteHeader() to write the HTTP response status
//     and headers. It must also call w.Write() to write response
//   - Renderers may optionally write the Content-Type header before
//     calling w.WriteHeader().
//   - Renderers SHOULD serialize before calling w.WriteHeader() so that an
//     encoding failure can still be reported to the client.
//
// Error handling:
//   - If Render returns a non-nil error, it indicates a failure to write
//     the response. The handler answers with a plain-text 500 if nothing
//     was written yet.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// RendererFunc adapts a function to a Renderer.
type RendererFunc func(w http.ResponseWriter, r *http.Request) error

func (f RendererFunc) Render(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// Processor is middleware-style logic that runs before the Renderer.
//
// Protocol:
//   - Processors MUST call next(...), unless they intend to
//     short-circuit the request.
//   - Processors MUST NOT call w.WriteHeader(...).
//   - Processors MUST NOT write to the response body.
//
// Error handling:
//   - If any processor returns a non-nil error, the chain stops immediately
//     and that error is returned to the caller.
type Processor interface {
	Process(w http.ResponseWriter, r *http.Request, next func(w http.ResponseWriter, r *http.Request) error) error
}

// ProcessorFunc adapts a function to a Processor.
type ProcessorFunc func(w http.ResponseWriter, r *http.Request, next func(w http.ResponseWriter, r *http.Request) error) error

func (f ProcessorFunc) Process(w http.ResponseWriter, r *http.Request, next func(w http.ResponseWriter, r *http.Request) error) error {
	return f(w, r, next)
}

// EndpointFunc is the wrapped handler function type.
//
// It receives the response writer, the incoming request, and a typed params
// value (typically a struct populated from path/query/header data) and
// returns a Renderer responsible for writing the response, or an error.
//
// EndpointFunc should implement business logic, without directly writing the
// response body. The Status, Content-Type header and body of the response
// are delegated to the returned Renderer.
//
// Parameter decoding is performed by the Handler wrapper.
type EndpointFunc[P any] func(w http.ResponseWriter, r *http.Request, params P) (Renderer, error)

// ErrorRendererFunc builds the response for a failed request from the status
// and client-visible message computed by StatusOf.
type ErrorRendererFunc func(r *http.Request, status int, message string) Renderer

// EndpointHandler is the standard http.Handler wrapper for an EndpointFunc.
//
// It runs zero or more processors. It then calls Endpoint with decoded
// params and invokes the returned Renderer to write the response.
//
// The params type P may be any type, but is typically a struct type used to
// hold decoded request parameters.
type EndpointHandler[P any] struct {
	Endpoint   EndpointFunc[P]
	Processors []Processor

	// ErrorRenderer renders failures. When nil, PlainErrorRenderer is used.
	ErrorRenderer ErrorRendererFunc

	// OnError, when set, observes every error before it is rendered.
	OnError func(r *http.Request, err error)
}

// Handler constructs an EndpointHandler.
//
// This helper exists to enable type inference for the params type P.
func Handler[P any](fn EndpointFunc[P], processors ...Processor) *EndpointHandler[P] {
	return &EndpointHandler[P]{
		Endpoint:   fn,
		Processors: processors,
	}
}

// HandleFunc adapts an EndpointFunc into an http.HandlerFunc.
//
// This helper exists to enable type inference for the params type P.
func HandleFunc[P any](fn EndpointFunc[P], processors ...Processor) http.HandlerFunc {
	return Handler(fn, processors...).ServeHTTP
}

// PlainErrorRenderer writes the message as a text/plain body.
func PlainErrorRenderer(_ *http.Request, status int, message string) Renderer {
	return &PlainRenderer{StringRenderer{Status: status, Body: message + "\n"}}
}

// headerTracker records whether the status line has been sent.
type headerTracker struct {
	http.ResponseWriter
	wrote bool
}

func (t *headerTracker) WriteHeader(status int) {
	t.wrote = true
	t.ResponseWriter.WriteHeader(status)
}

func (t *headerTracker) Write(p []byte) (int, error) {
	t.wrote = true
	return t.ResponseWriter.Write(p)
}

func (t *headerTracker) Unwrap() http.ResponseWriter {
	return t.ResponseWriter
}

// writeFallback is the last resort when a renderer fails before sending
// anything.
func writeFallback(w http.ResponseWriter) {
	h := w.Header()
	h.Del("Content-Length")
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = io.WriteString(w, http.StatusText(http.StatusInternalServerError)+"\n")
}

// render runs rd through tw and falls back to a plain-text 500 when it fails
// before anything reached the client.
func render(rd Renderer, tw *headerTracker, r *http.Request) error {
	err := rd.Render(tw, r)
	if err != nil && !tw.wrote {
		writeFallback(tw)
	}
	return err
}

// ServeHTTP implements http.Handler.
func (h *EndpointHandler[P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Endpoint == nil {
		writeFallback(w)
		return
	}

	// Set once the EndpointFunc hands over a Renderer. A panic inside Render
	// leaves wrote unset so the error path can still answer.
	var tracker *headerTracker

	// Create a function to recursively call each processor in order, followed by the EndpointFunc.
	var run func(i int, w2 http.ResponseWriter, r2 *http.Request) error
	run = func(i int, w2 http.ResponseWriter, r2 *http.Request) error {
		if i < 0 || i > len(h.Processors) {
			// Sanity check failure.
			return errors.New("endpoint: invalid processor index")
		} else if i < len(h.Processors) {
			if h.Processors[i] == nil {
				return errors.New("endpoint: nil processor")
			}
			// Call the i'th processor followed by the next recursion of the "loop".
			return h.Processors[i].Process(w2, r2, func(w3 http.ResponseWriter, r3 *http.Request) error {
				return run(i+1, w3, r3)
			})
		}

		// All processors have been called; now decode params, call the
		// EndpointFunc and render.
		//
		// P must be a struct type, or a pointer to a struct type.
		// This is enforced by endpoint.Unmarshal (runtime) rather than by the type system.
		var params P
		if err := Unmarshal(r2, &params); err != nil {
			return err
		}
		renderer, err := h.Endpoint(w2, r2, params)
		if err != nil {
			return err
		}
		if renderer == nil {
			return errors.New("endpoint: nil renderer")
		}

		if c, ok := renderer.(io.Closer); ok {
			defer c.Close()
		}

		tracker = &headerTracker{ResponseWriter: w2}
		return render(renderer, tracker, r2)
	}

	err := run(0, w, r)
	if err == nil {
		return
	}
	if h.OnError != nil {
		h.OnError(r, err)
	}
	if tracker != nil && tracker.wrote {
		// The renderer already answered, either fully or with the fallback.
		return
	}

	status, message := StatusOf(err)
	errRenderer := h.ErrorRenderer
	if errRenderer == nil {
		errRenderer = PlainErrorRenderer
	}
	rd := errRenderer(r, status, message)
	if rd == nil {
		writeFallback(w)
		return
	}
	_ = render(rd, &headerTracker{ResponseWriter: w}, r)
}

package endpoint

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// JSONRenderer serializes a value as JSON and writes it to the response.
//
// JSONRenderer is terminal: it MUST call WriteHeader and MUST NOT call next.
//
// Content-Type is always set to "application/json".
//
// Error handling:
//   - The value is encoded into a buffer before anything is written. If
//     encoding fails, JSONRenderer returns the encoding error without touching
//     the response, so the handler can still send a 500.
//
// This renderer uses json.Encoder which appends a trailing newline.
type JSONRenderer struct {
	Status int
	Value  interface{}

	// EncoderFactory optionally customizes encoder creation.
	// When nil, json.NewEncoder is used with HTML escaping disabled.
	EncoderFactory func(w io.Writer) *json.Encoder
}

func (jr *JSONRenderer) Render(w http.ResponseWriter, _ *http.Request) error {
	var buf bytes.Buffer
	var enc *json.Encoder
	if jr.EncoderFactory != nil {
		enc = jr.EncoderFactory(&buf)
	} else {
		enc = json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
	}
	if enc == nil {
		// Treat a nil factory return as a programming error.
		return io.ErrUnexpectedEOF
	}
	if err := enc.Encode(jr.Value); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	status := jr.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// PrettyEncoder is an EncoderFactory that indents output by two spaces.
func PrettyEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc
}

package endpoint

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// Negotiate returns a renderer for value in the representation the client
// prefers. CBOR is chosen only when the Accept header ranks application/cbor
// strictly above application/json; everything else gets JSON.
func Negotiate(r *http.Request, status int, value any) Renderer {
	if r != nil && prefersCBOR(r.Header.Get("Accept")) {
		return &CBORRenderer{Status: status, Value: value}
	}
	return &JSONRenderer{Status: status, Value: value, EncoderFactory: PrettyEncoder}
}

func prefersCBOR(accept string) bool {
	if accept == "" {
		return false
	}
	cborQ, jsonQ := -1.0, -1.0
	for _, part := range strings.Split(accept, ",") {
		mt, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if v, ok := params["q"]; ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				q = f
			}
		}
		switch mt {
		case CBORContentType:
			cborQ = max(cborQ, q)
		case "application/json", "application/*", "*/*":
			jsonQ = max(jsonQ, q)
		}
	}
	return cborQ > 0 && cborQ > jsonQ
}

package endpoint

import (
	"net/http"

	"github.com/fxamacker/cbor/v2"
)

// CBORContentType is the media type written by CBORRenderer.
const CBORContentType = "application/cbor"

// cborEncMode sorts map keys deterministically and encodes floats in the
// shortest lossless form.
var cborEncMode = mustEncMode(cbor.EncOptions{
	Sort:          cbor.SortCoreDeterministic,
	ShortestFloat: cbor.ShortestFloat16,
})

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic("endpoint: cbor: " + err.Error())
	}
	return em
}

// CBORRenderer serializes a value as CBOR (RFC 8949).
//
// Struct fields use their `cbor` tag, falling back to the `json` tag, so the
// same result types serve both encodings.
type CBORRenderer struct {
	Status int
	Value  interface{}
}

func (cr *CBORRenderer) Render(w http.ResponseWriter, _ *http.Request) error {
	b, err := cborEncMode.Marshal(cr.Value)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", CBORContentType)
	status := cr.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}

package endpoint

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var errSentinel = errors.New("json encode error")

type jsonBadValue struct{}

func (jsonBadValue) MarshalJSON() ([]byte, error) {
	return nil, errSentinel
}

func TestJSONRenderer_SetsContentTypeAndEncodesBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	r := JSONRenderer{Value: map[string]string{"hello": "world"}}
	if err := r.Render(rec, req); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	resp := rec.Result()
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected Content-Type %q, got %q", "application/json", got)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	// json.Encoder adds a trailing newline.
	if got := rec.Body.String(); got != "{\"hello\":\"world\"}\n" {
		t.Fatalf("expected body %q, got %q", "{\"hello\":\"world\"}\\n", got)
	}
}

func TestJSONRenderer_EncodeError_WritesNothing(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	r := JSONRenderer{Value: jsonBadValue{}}
	err := r.Render(rec, req)
	if err == nil {
		t.Fatalf("expected error")
	}
	var me *json.MarshalerError
	if !errors.As(err, &me) {
		t.Fatalf("expected *json.MarshalerError, got %T (%v)", err, err)
	}
	if unwrapped := errors.Unwrap(err); unwrapped != errSentinel {
		t.Fatalf("expected errors.Unwrap(err) == %v, got %v", errSentinel, unwrapped)
	}
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 || rec.Header().Get("Content-Type") != "" {
		t.Fatalf("expected untouched recorder, got code=%d body=%q", rec.Code, rec.Body.String())
	}
}

func TestJSONRenderer_EncoderFactory_AllowsEscapeHTMLTrue(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	r := JSONRenderer{
		Value: map[string]string{"html": "<b>&</b>"},
		EncoderFactory: func(w io.Writer) *json.Encoder {
			enc := json.NewEncoder(w)
			enc.SetEscapeHTML(true)
			return enc
		},
	}

	if err := r.Render(rec, req); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	got := rec.Body.String()
	if !strings.Contains(got, "\\u003c") || !strings.Contains(got, "\\u003e") || !strings.Contains(got, "\\u0026") {
		t.Fatalf("expected HTML escapes in JSON output, got %q", got)
	}
}

func TestJSONRenderer_PrettyEncoder_Indents(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	r := JSONRenderer{Status: http.StatusBadRequest, Value: map[string]int{"a": 1}, EncoderFactory: PrettyEncoder}
	if err := r.Render(rec, req); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if got := rec.Body.String(); got != "{\n  \"a\": 1\n}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}

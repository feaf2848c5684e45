package endpoint

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

type textUpper string

func (t *textUpper) UnmarshalText(b []byte) error {
	*t = textUpper(strings.ToUpper(string(b)))
	return nil
}

type decodeParams struct {
	ID     string   `path:"id"`
	Q      string   `query:"q"`
	N      int      `query:"n"`
	Ok     bool     `query:"ok"`
	Ratio  float64  `query:"ratio"`
	P      *int     `query:"p"`
	Tags   []string `query:"tag"`
	Size   uint8    `query:"size"`
	Trace  string   `header:"X-Trace"`
	Hidden string   `query:"-"`
}

// decodeVia routes req through a mux so path values are populated.
func decodeVia(t *testing.T, pattern string, req *http.Request, dst any) error {
	t.Helper()
	var decodeErr error
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		decodeErr = Unmarshal(r, dst)
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("request did not reach handler: %d", rec.Code)
	}
	return decodeErr
}

func TestUnmarshal_PathQueryHeader(t *testing.T) {
	var p decodeParams
	req := httptest.NewRequest(http.MethodGet, "/items/42?q=hi&n=7&ok=true&ratio=1.5&p=9&tag=a&tag=b&size=3&Hidden=x", nil)
	req.Header.Set("X-Trace", "abc")

	if err := decodeVia(t, "/items/{id}", req, &p); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if p.ID != "42" || p.Q != "hi" || p.N != 7 || !p.Ok || p.Ratio != 1.5 {
		t.Fatalf("unexpected scalars: %+v", p)
	}
	if p.P == nil || *p.P != 9 {
		t.Fatalf("expected P=9, got %v", p.P)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "a" || p.Tags[1] != "b" {
		t.Fatalf("expected tags [a b], got %v", p.Tags)
	}
	if p.Size != 3 {
		t.Fatalf("expected size 3, got %d", p.Size)
	}
	if p.Trace != "abc" {
		t.Fatalf("expected trace %q, got %q", "abc", p.Trace)
	}
	if p.Hidden != "" {
		t.Fatalf("expected ignored field to stay empty, got %q", p.Hidden)
	}
}

func TestUnmarshal_MissingValuesLeaveZero(t *testing.T) {
	var p decodeParams
	req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
	if err := decodeVia(t, "/items/{id}", req, &p); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if p.P != nil || p.Tags != nil || p.Q != "" {
		t.Fatalf("expected zero values, got %+v", p)
	}
}

func TestUnmarshal_PathOverridesQuery(t *testing.T) {
	var p struct {
		ID string `path:"id" query:"id"`
	}
	req := httptest.NewRequest(http.MethodGet, "/items/path?id=query", nil)
	if err := decodeVia(t, "/items/{id}", req, &p); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if p.ID != "path" {
		t.Fatalf("expected %q, got %q", "path", p.ID)
	}
}

func TestUnmarshal_UntaggedField_DefaultsToLowercase(t *testing.T) {
	var p struct {
		Name string
	}
	req := httptest.NewRequest(http.MethodGet, "/?name=ana", nil)
	if err := Unmarshal(req, &p); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if p.Name != "ana" {
		t.Fatalf("expected %q, got %q", "ana", p.Name)
	}
}

func TestUnmarshal_EmptyTagValue_UsesFieldNameLowercased(t *testing.T) {
	var p struct {
		Lista string `query:""`
	}
	req := httptest.NewRequest(http.MethodGet, "/?lista=1,2", nil)
	if err := Unmarshal(req, &p); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if p.Lista != "1,2" {
		t.Fatalf("expected %q, got %q", "1,2", p.Lista)
	}
}

func TestUnmarshal_NestedStruct(t *testing.T) {
	type inner struct {
		A string `query:"a"`
	}
	var p struct {
		In  inner
		Ptr *inner
	}
	req := httptest.NewRequest(http.MethodGet, "/?a=1", nil)
	if err := Unmarshal(req, &p); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if p.In.A != "1" || p.Ptr == nil || p.Ptr.A != "1" {
		t.Fatalf("unexpected nested decode: %+v %+v", p.In, p.Ptr)
	}
}

func TestUnmarshal_InvalidNumber_IsBadRequest(t *testing.T) {
	var p struct {
		N int `query:"n"`
	}
	req := httptest.NewRequest(http.MethodGet, "/?n=abc", nil)
	err := Unmarshal(req, &p)
	if status, _ := StatusOf(err); status != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (%v)", http.StatusBadRequest, status, err)
	}
}

func TestUnmarshal_MaxLength(t *testing.T) {
	var p struct {
		V string `query:"v" maxLength:"3"`
	}
	req := httptest.NewRequest(http.MethodGet, "/?v=abcd", nil)
	err := Unmarshal(req, &p)
	if status, _ := StatusOf(err); status != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (%v)", http.StatusBadRequest, status, err)
	}

	var unlimited struct {
		V string `query:"v" maxLength:"0"`
	}
	long := strings.Repeat("x", defaultFieldLimit+1)
	req = httptest.NewRequest(http.MethodGet, "/?v="+long, nil)
	if err := Unmarshal(req, &unlimited); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if len(unlimited.V) != len(long) {
		t.Fatalf("expected %d bytes, got %d", len(long), len(unlimited.V))
	}
}

func TestUnmarshal_DefaultFieldLimit(t *testing.T) {
	var p struct {
		V string `query:"v"`
	}
	req := httptest.NewRequest(http.MethodGet, "/?v="+strings.Repeat("x", defaultFieldLimit+1), nil)
	err := Unmarshal(req, &p)
	if status, _ := StatusOf(err); status != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, status)
	}
}

func TestUnmarshal_MaxLength_InvalidTag_Is500(t *testing.T) {
	var p struct {
		V string `query:"v" maxLength:"lots"`
	}
	req := httptest.NewRequest(http.MethodGet, "/?v=a", nil)
	err := Unmarshal(req, &p)
	if status, _ := StatusOf(err); status != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, status)
	}
}

func TestUnmarshal_NonStructParams_ReturnsError(t *testing.T) {
	var n int
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	err := Unmarshal(req, &n)
	if status, _ := StatusOf(err); status != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, status)
	}
	if err := Unmarshal(req, nil); err == nil {
		t.Fatalf("expected error for nil dst")
	}
}

func TestUnmarshal_TextUnmarshaler_CustomType(t *testing.T) {
	var p struct {
		V textUpper `query:"v"`
	}
	req := httptest.NewRequest(http.MethodGet, "/t?v=hello", nil)
	if err := Unmarshal(req, &p); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if string(p.V) != "HELLO" {
		t.Fatalf("expected V %q, got %q", "HELLO", string(p.V))
	}
}

func TestUnmarshal_TextUnmarshaler_TimeTime(t *testing.T) {
	var p struct {
		T time.Time `query:"t"`
	}
	want := time.Date(2006, 1, 2, 15, 4, 5, 0, time.FixedZone("UTC+7", 7*60*60))
	req := httptest.NewRequest(http.MethodGet, "/t?t="+url.QueryEscape(want.Format(time.RFC3339)), nil)
	if err := Unmarshal(req, &p); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if !p.T.Equal(want) {
		t.Fatalf("expected T %v, got %v", want, p.T)
	}
}

package endpoint

import (
	"encoding"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// defaultFieldLimit is the maximum byte length of a single decoded value when
// a field carries no maxLength tag.
//
// This is a var (not const) so tests/callers can override it if needed.
var defaultFieldLimit = 16 * 1024 // 16KB

// Unmarshal populates dst (must be a non-nil pointer) from the request.
//
// Supported sources:
//   - path params: r.PathValue()
//   - query params: r.URL.Query()
//   - headers: r.Header (via `header` tag)
//
// Supported structtags:
//   - `path:"name"`
//   - `query:"name"`
//   - `header:"name"`
//   - `query:"-"` (or any source tag set to "-") to ignore the field entirely
//   - `maxLength:"n"` to set the maximum byte length for a field value
//
// Where name defaults to the struct field name lowercased when empty.
//
// Notes:
//   - If multiple source tags are present on the same field, precedence is:
//     path, query, header.
//   - Untagged scalar fields are looked up as path, then query, using the
//     lowercased field name.
//   - Untagged struct fields are decoded recursively unless they implement
//     encoding.TextUnmarshaler.
//   - If no data is present for a field, it is left unchanged (zero-value by default).
//   - Slice fields receive one element per repeated value.
//
// Length constraints:
//   - Use `maxLength:"n"` to set a maximum byte length for the field value.
//     If the incoming value exceeds this limit, Unmarshal returns a 400 Bad Request error.
//     If `maxLength` is absent, a default limit of 16KB (16384 bytes) is enforced.
//     Use `maxLength:"0"` or `maxLength:""` for no limit.
func Unmarshal(r *http.Request, dst any) error {
	if r == nil {
		return newEndpointError(http.StatusInternalServerError, "", errors.New("endpoint: decode: nil request"))
	}
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return newEndpointError(http.StatusInternalServerError, "", errors.New("endpoint: decode: dst must be a non-nil pointer"))
	}

	// Support *P where P may be a struct or pointer-to-struct.
	root := v.Elem()
	if root.Kind() == reflect.Pointer {
		if root.IsNil() {
			root.Set(reflect.New(root.Type().Elem()))
		}
		root = root.Elem()
	}
	if root.Kind() != reflect.Struct {
		return newEndpointError(http.StatusInternalServerError, "", errors.New("endpoint: decode: dst must point to a struct (or pointer to struct)"))
	}

	q := url.Values{}
	if r.URL != nil {
		q = r.URL.Query()
	}

	lookups := map[string]valueLookup{
		"path": func(name string) []string {
			if v := r.PathValue(name); v != "" {
				return []string{v}
			}
			return nil
		},
		"query": func(name string) []string {
			return q[name]
		},
		"header": func(name string) []string {
			return r.Header[http.CanonicalHeaderKey(name)]
		},
	}
	return unmarshalStruct(root, lookups)
}

// valueLookup returns every raw value for name, or nil when absent.
type valueLookup func(name string) []string

// sourceOrder is the precedence in which sources are consulted.
var sourceOrder = []string{"path", "query", "header"}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

type sourceTag struct {
	Source string
	Name   string
}

func unmarshalStruct(structVal reflect.Value, lookups map[string]valueLookup) error {
	t := structVal.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" { // unexported
			continue
		}
		fv := structVal.Field(i)

		tags, ignored := fieldSources(sf)
		if ignored {
			continue
		}

		if len(tags) == 0 {
			if inner, ok := nestedStruct(fv); ok {
				if err := unmarshalStruct(inner, lookups); err != nil {
					return err
				}
				continue
			}
			name := strings.ToLower(sf.Name)
			tags = []sourceTag{{Source: "path", Name: name}, {Source: "query", Name: name}}
		}

		limit, err := fieldLengthLimit(sf)
		if err != nil {
			return newEndpointError(http.StatusInternalServerError, "", fmt.Errorf("endpoint: decode: field %s: %w", sf.Name, err))
		}

		for _, tag := range tags {
			raw := lookups[tag.Source](tag.Name)
			if len(raw) == 0 {
				continue
			}
			for _, val := range raw {
				if limit > 0 && len(val) > limit {
					return newEndpointError(http.StatusBadRequest, "", fmt.Errorf("endpoint: decode: %s %q -> %s: value exceeds max length %d", tag.Source, tag.Name, sf.Name, limit))
				}
			}
			if err := setFieldFromValues(fv, raw); err != nil {
				return newEndpointError(http.StatusBadRequest, "", fmt.Errorf("endpoint: decode: %s %q -> %s: %w", tag.Source, tag.Name, sf.Name, err))
			}
			break
		}
	}
	return nil
}

// fieldSources returns the source tags of sf in precedence order. ignored is
// true when any source tag is "-".
func fieldSources(sf reflect.StructField) (tags []sourceTag, ignored bool) {
	for _, src := range sourceOrder {
		val, has := sf.Tag.Lookup(src)
		if !has {
			continue
		}
		name := strings.TrimSpace(val)
		if name == "-" {
			return nil, true
		}
		if name == "" {
			name = strings.ToLower(sf.Name)
		}
		tags = append(tags, sourceTag{Source: src, Name: name})
	}
	return tags, false
}

// nestedStruct reports whether fv should be decoded recursively, allocating a
// nil pointer-to-struct on the way.
func nestedStruct(fv reflect.Value) (reflect.Value, bool) {
	if fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.Struct {
		if fv.Type().Implements(textUnmarshalerType) {
			return reflect.Value{}, false
		}
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return fv.Elem(), true
	}
	if fv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	if fv.CanAddr() && fv.Addr().Type().Implements(textUnmarshalerType) {
		return reflect.Value{}, false
	}
	return fv, true
}

func fieldLengthLimit(sf reflect.StructField) (int, error) {
	val, has := sf.Tag.Lookup("maxLength")
	if !has {
		return defaultFieldLimit, nil
	}
	val = strings.TrimSpace(val)
	if val == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("maxLength: invalid integer %q", val)
	}
	if n < 0 {
		return 0, errors.New("maxLength: must be >= 0")
	}
	return n, nil
}

func setFieldFromValues(v reflect.Value, values []string) error {
	// Helper to resolve pointers.
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}

	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() != reflect.Uint8 {
		slice := reflect.MakeSlice(v.Type(), 0, len(values))
		for _, val := range values {
			elem := reflect.New(v.Type().Elem()).Elem()
			if err := setFieldFromString(elem, val); err != nil {
				return err
			}
			slice = reflect.Append(slice, elem)
		}
		v.Set(slice)
		return nil
	}

	// Scalar field: use the first value.
	return setFieldFromString(v, values[0])
}

func setFieldFromString(v reflect.Value, s string) error {
	if !v.CanSet() {
		return errors.New("field is not settable")
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return setFieldFromString(v.Elem(), s)
	}

	// Support encoding.TextUnmarshaler for custom types.
	if v.CanAddr() {
		if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(s))
		}
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
		return nil
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.Uint8 {
			break
		}
		v.SetBytes([]byte(s))
		return nil
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
		return nil
	}

	return newEndpointError(http.StatusInternalServerError, "", fmt.Errorf("unsupported kind %s", v.Kind()))
}

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mnehpets/utilserve/endpoint"
	"github.com/mnehpets/utilserve/logger"
)

func TestRecover_ConvertsPanicTo500(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := Recover(logger.NewWithCore(core))

	r := httptest.NewRequest("GET", "/api/imc", nil)
	r = r.WithContext(WithRequestID(r.Context(), "req-1"))
	err := p.Process(httptest.NewRecorder(), r, func(w http.ResponseWriter, r *http.Request) error {
		panic("kaboom")
	})
	require.Error(t, err)

	status, msg := endpoint.StatusOf(err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), msg)
	assert.NotContains(t, msg, "kaboom")

	entries := logs.FilterMessage("panic recovered").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "kaboom", fields["panic"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.NotEmpty(t, fields["stack"])
}

func TestRecover_PassesThroughErrors(t *testing.T) {
	sentinel := errors.New("plain")
	err := Recover(nil).Process(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil), func(w http.ResponseWriter, r *http.Request) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestRecover_RepanicsAbortHandler(t *testing.T) {
	p := Recover(nil)
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		_ = p.Process(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil), func(w http.ResponseWriter, r *http.Request) error {
			panic(http.ErrAbortHandler)
		})
	})
}

func TestRecover_InsideEndpointHandler(t *testing.T) {
	type params struct{}
	h := endpoint.HandleFunc(func(w http.ResponseWriter, r *http.Request, _ params) (endpoint.Renderer, error) {
		panic("endpoint exploded")
	}, Recover(nil))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "exploded")
}

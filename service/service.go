// Package service wires the utility functions to HTTP routes.
package service

import (
	"errors"
	"net/http"

	"github.com/mnehpets/utilserve/config"
	"github.com/mnehpets/utilserve/endpoint"
	"github.com/mnehpets/utilserve/logger"
	"github.com/mnehpets/utilserve/middleware"
	"github.com/mnehpets/utilserve/utility"
)

// Client-facing messages for statuses the endpoints do not word themselves.
const (
	msgInternal   = "Erro interno do servidor"
	msgBadRequest = "Requisição inválida"
	msgNotFound   = "Endpoint não encontrado"
	msgTooLong    = "URI muito longa"
)

// Server holds the dependencies shared by every route.
type Server struct {
	Log *logger.Logger
	// Source feeds the password generator. nil uses utility.DefaultSource.
	Source utility.Source

	processors []endpoint.Processor
}

// New builds a Server from cfg. A nil cfg uses config.Default().
func New(cfg *config.Config, log *logger.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNop()
	}
	var secOpts []middleware.SecurityHeadersOption
	if len(cfg.CORSOrigins) > 0 {
		secOpts = append(secOpts, middleware.WithCORS(&middleware.CORSConfig{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedHeaders: []string{"Accept", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         3600,
		}))
	}
	return &Server{
		Log: log,
		processors: []endpoint.Processor{
			middleware.RequestID(),
			middleware.Recover(log),
			middleware.NewSecurityHeadersProcessor(secOpts...),
			middleware.RequestLineLimit(cfg.MaxRequestLine),
		},
	}
}

// Handler returns the routed API wrapped in access logging.
//
// Any method is accepted on every route.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/{$}", handle(s, s.docs))
	mux.Handle("/api", handle(s, s.docs))
	mux.Handle("/api/imc", handle(s, s.bmi))
	mux.Handle("/api/senha", handle(s, s.password))
	mux.Handle("/api/numeros", handle(s, s.numbers))
	mux.Handle("/api/temperatura", handle(s, s.temperature))
	mux.Handle("/", handle(s, s.notFound))
	return middleware.AccessLog(s.Log, mux)
}

// NewHandler is shorthand for New(cfg, log).Handler().
func NewHandler(cfg *config.Config, log *logger.Logger) http.Handler {
	return New(cfg, log).Handler()
}

func handle[P any](s *Server, fn endpoint.EndpointFunc[P]) http.Handler {
	return &endpoint.EndpointHandler[P]{
		Endpoint:      fn,
		Processors:    s.processors,
		ErrorRenderer: errorRenderer,
		OnError:       s.logError,
	}
}

func (s *Server) source() utility.Source {
	if s.Source == nil {
		return utility.DefaultSource
	}
	return s.Source
}

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Erro string `json:"erro"`
}

// errorRenderer turns a failed request into {"erro": message}. Statuses below
// 400 come from processors that answer early (CORS preflight) and carry no body.
func errorRenderer(r *http.Request, status int, message string) endpoint.Renderer {
	if status < http.StatusBadRequest {
		return &endpoint.NoContentRenderer{Status: status}
	}
	switch {
	case status >= http.StatusInternalServerError:
		message = msgInternal
	case message == http.StatusText(status):
		switch status {
		case http.StatusBadRequest:
			message = msgBadRequest
		case http.StatusNotFound:
			message = msgNotFound
		case http.StatusRequestURITooLong:
			message = msgTooLong
		}
	}
	return endpoint.Negotiate(r, status, ErrorBody{Erro: message})
}

func (s *Server) logError(r *http.Request, err error) {
	status, _ := endpoint.StatusOf(err)
	kv := []interface{}{"method", r.Method, "path", r.URL.Path, "status", status, "error", err.Error()}
	if status >= http.StatusInternalServerError {
		s.Log.Error("request failed", kv...)
		return
	}
	s.Log.Debug("request rejected", kv...)
}

// badRequest maps a utility failure to a 400 carrying its message.
func badRequest(err error) error {
	var ue *utility.Error
	if errors.As(err, &ue) && ue != nil {
		return endpoint.Error(http.StatusBadRequest, ue.Message, err)
	}
	return err
}

package service

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mnehpets/utilserve/endpoint"
	"github.com/mnehpets/utilserve/utility"
)

// The router checks presence and coarse syntax with its own messages before
// handing typed values to the utility package, which owns the domain rules.

type bmiParams struct {
	Peso   string `query:"peso" maxLength:"64"`
	Altura string `query:"altura" maxLength:"64"`
}

func (s *Server) bmi(_ http.ResponseWriter, r *http.Request, p bmiParams) (endpoint.Renderer, error) {
	if blank(p.Peso) || blank(p.Altura) {
		return nil, endpoint.Error(http.StatusBadRequest, "Parâmetros inválidos. Forneça peso e altura.", nil)
	}
	weight, okW := utility.ParseNumber(p.Peso)
	height, okH := utility.ParseNumber(p.Altura)
	if !okW || !okH {
		return nil, endpoint.Error(http.StatusBadRequest, "Parâmetros inválidos. Peso e altura devem ser numéricos.", nil)
	}
	res, err := utility.BMI(weight, height)
	if err != nil {
		return nil, badRequest(err)
	}
	return endpoint.Negotiate(r, http.StatusOK, res), nil
}

type passwordParams struct {
	Tamanho   string `query:"tamanho" maxLength:"32"`
	Especiais string `query:"especiais" maxLength:"32"`
}

func (s *Server) password(_ http.ResponseWriter, r *http.Request, p passwordParams) (endpoint.Renderer, error) {
	length := utility.DefaultPasswordLength
	if !blank(p.Tamanho) {
		n, err := strconv.Atoi(strings.TrimSpace(p.Tamanho))
		if err != nil {
			return nil, endpoint.Error(http.StatusBadRequest, "O parâmetro tamanho deve ser um número inteiro.", err)
		}
		if n < utility.MinPasswordLength || n > utility.MaxPasswordLength {
			return nil, endpoint.Error(http.StatusBadRequest, "O parâmetro tamanho deve estar entre 4 e 50.", nil)
		}
		length = n
	}
	// Only the literal "false" turns symbols off.
	symbols := p.Especiais != "false"

	res, err := utility.Password(length, symbols, s.source())
	if err != nil {
		return nil, badRequest(err)
	}
	return endpoint.Negotiate(r, http.StatusOK, res), nil
}

type numbersParams struct {
	// Bounded by the request line limit rather than a field limit.
	Lista string `query:"lista" maxLength:""`
}

func (s *Server) numbers(_ http.ResponseWriter, r *http.Request, p numbersParams) (endpoint.Renderer, error) {
	if blank(p.Lista) {
		return nil, endpoint.Error(http.StatusBadRequest, "Forneça uma lista de números separados por vírgula.", nil)
	}
	tokens := utility.SplitList(p.Lista)
	if len(tokens) > utility.MaxListLength {
		return nil, endpoint.Error(http.StatusBadRequest, "Lista muito grande. Envie até 1000 números.", nil)
	}
	res, err := utility.AnalyzeNumbers(tokens)
	if err != nil {
		return nil, badRequest(err)
	}
	return endpoint.Negotiate(r, http.StatusOK, res), nil
}

type temperatureParams struct {
	Valor string `query:"valor" maxLength:"64"`
	De    string `query:"de" maxLength:"16"`
	Para  string `query:"para" maxLength:"16"`
}

func (s *Server) temperature(_ http.ResponseWriter, r *http.Request, p temperatureParams) (endpoint.Renderer, error) {
	if blank(p.Valor) || blank(p.De) || blank(p.Para) {
		return nil, endpoint.Error(http.StatusBadRequest, "Forneça valor, escala de origem (de) e escala de destino (para).", nil)
	}
	value, ok := utility.ParseNumber(p.Valor)
	if !ok {
		return nil, endpoint.Error(http.StatusBadRequest, "O parâmetro valor deve ser numérico.", nil)
	}
	res, err := utility.ConvertTemperature(value, p.De, p.Para)
	if err != nil {
		return nil, badRequest(err)
	}
	return endpoint.Negotiate(r, http.StatusOK, res), nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

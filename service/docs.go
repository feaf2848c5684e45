package service

import (
	"net/http"

	"github.com/mnehpets/utilserve/endpoint"
)

// Route describes one endpoint in the documentation listing.
type Route struct {
	Rota       string `json:"rota"`
	Metodo     string `json:"metodo"`
	Parametros string `json:"parametros"`
	Exemplo    string `json:"exemplo"`
}

// Routes is the documented API surface.
var Routes = []Route{
	{
		Rota:       "/api/imc",
		Metodo:     http.MethodGet,
		Parametros: "peso (kg), altura (m)",
		Exemplo:    "/api/imc?peso=70&altura=1.75",
	},
	{
		Rota:       "/api/senha",
		Metodo:     http.MethodGet,
		Parametros: "tamanho (opcional, 4 a 50), especiais (true/false, opcional)",
		Exemplo:    "/api/senha?tamanho=16&especiais=true",
	},
	{
		Rota:       "/api/numeros",
		Metodo:     http.MethodGet,
		Parametros: "lista (separada por vírgula, até 1000 itens)",
		Exemplo:    "/api/numeros?lista=5,2,8,1,9,3",
	},
	{
		Rota:       "/api/temperatura",
		Metodo:     http.MethodGet,
		Parametros: "valor, de (C/F/K), para (C/F/K)",
		Exemplo:    "/api/temperatura?valor=25&de=C&para=F",
	},
}

// DocsBody is served at / and /api.
type DocsBody struct {
	Mensagem  string  `json:"mensagem"`
	Endpoints []Route `json:"endpoints"`
}

// NotFoundBody answers unknown paths.
type NotFoundBody struct {
	Erro             string   `json:"erro"`
	RotasDisponiveis []string `json:"rotasDisponiveis"`
}

type noParams struct{}

func (s *Server) docs(_ http.ResponseWriter, r *http.Request, _ noParams) (endpoint.Renderer, error) {
	return endpoint.Negotiate(r, http.StatusOK, DocsBody{
		Mensagem:  "API de Utilitários",
		Endpoints: Routes,
	}), nil
}

func (s *Server) notFound(_ http.ResponseWriter, r *http.Request, _ noParams) (endpoint.Renderer, error) {
	paths := []string{"/", "/api"}
	for _, rt := range Routes {
		paths = append(paths, rt.Rota)
	}
	return endpoint.Negotiate(r, http.StatusNotFound, NotFoundBody{
		Erro:             msgNotFound,
		RotasDisponiveis: paths,
	}), nil
}

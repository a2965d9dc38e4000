package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/revenue-command-center/internal/metrics"
	"github.com/vfg2006/revenue-command-center/pkg/apiErrors"
	"github.com/vfg2006/revenue-command-center/pkg/middleware"
)

var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.AddRoutes(routes...)
		}
	}

	// WithMetrics instrumenta as rotas adicionadas depois dela
	WithMetrics = func(m *metrics.Metrics) ConfigRouter {
		return func(router *Router) {
			router.metrics = m
		}
	}
)

type Route struct {
	Path    string
	Method  string
	Handler http.Handler
}

type Router struct {
	router  *httprouter.Router
	metrics *metrics.Metrics
}

type ConfigRouter func(router *Router)

func New(configs ...ConfigRouter) Router {
	router := &Router{
		router: httprouter.New(),
	}

	router.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Rota não encontrada", nil)
	})
	router.router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "Método não permitido", nil)
	})

	for _, config := range configs {
		config(router)
	}

	return *router
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes registra as rotas, cada uma instrumentada com o próprio padrão de caminho
func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		handler := middleware.Instrument(r.metrics, route.Method, route.Path)(route.Handler)
		r.router.Handler(route.Method, route.Path, handler)
	}
}

package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vfg2006/revenue-command-center/internal/api/handler/router"
	"github.com/vfg2006/revenue-command-center/internal/usecases/analyzing"
	"github.com/vfg2006/revenue-command-center/internal/usecases/segmenting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

// Compatibility mantém os caminhos da API REST original consumidos pelo painel
func Compatibility(segmenter segmenting.Segmenter, analyzer analyzing.Analyzer, sourceName string) []router.Route {
	return []router.Route{
		{
			Path:    "/api",
			Method:  http.MethodGet,
			Handler: RootHandler(sourceName),
		},
		{
			Path:    "/api/users",
			Method:  http.MethodGet,
			Handler: ListUsers(segmenter),
		},
		{
			Path:    "/api/users/risk",
			Method:  http.MethodGet,
			Handler: serve(analyzer.GetUsersAtRisk),
		},
		{
			Path:    "/api/analytics/funnel",
			Method:  http.MethodGet,
			Handler: serve(analyzer.GetFunnelSnapshot),
		},
		{
			Path:    "/api/analytics/sectors",
			Method:  http.MethodGet,
			Handler: serve(analyzer.GetSectorRevenue),
		},
		{
			Path:    "/api/analytics/pulse",
			Method:  http.MethodGet,
			Handler: serve(analyzer.GetPulse),
		},
		{
			Path:    "/api/user-history/:id",
			Method:  http.MethodGet,
			Handler: GetUserHistory(analyzer.GetCustomerHistory),
		},
		{
			Path:    "/api/command-center-data",
			Method:  http.MethodGet,
			Handler: serve(analyzer.GetCommandCenter),
		},
		{
			Path:    "/api/simulate-traffic",
			Method:  http.MethodPost,
			Handler: serve(analyzer.SimulateTraffic),
		},
	}
}

func Segments(segmenter segmenting.Segmenter) []router.Route {
	return []router.Route{
		{
			Path:    "/api/dashboard/stats",
			Method:  http.MethodGet,
			Handler: GetDashboardStats(segmenter),
		},
		{
			Path:    "/api/cohorts/:cohort",
			Method:  http.MethodGet,
			Handler: ListCohort(segmenter),
		},
		{
			Path:    "/api/customers/:id",
			Method:  http.MethodGet,
			Handler: GetCustomerDetail(segmenter),
		},
	}
}

func Analytics(analyzer analyzing.Analyzer, monitor PulseStatusProvider) []router.Route {
	return []router.Route{
		{
			Path:    "/api/analytics/funnel/report",
			Method:  http.MethodGet,
			Handler: serve(analyzer.GetFunnelReport),
		},
		{
			Path:    "/api/analytics/funnel/history",
			Method:  http.MethodGet,
			Handler: serve(analyzer.GetFunnelHistory),
		},
		{
			Path:    "/api/analytics/sectors/report",
			Method:  http.MethodGet,
			Handler: serve(analyzer.GetSectorReport),
		},
		{
			Path:    "/api/analytics/pulse/live",
			Method:  http.MethodGet,
			Handler: GetLivePulse(monitor),
		},
	}
}

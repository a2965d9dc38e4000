package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/revenue-command-center/internal/domain"
	"github.com/vfg2006/revenue-command-center/internal/usecases/segmenting"
	"github.com/vfg2006/revenue-command-center/pkg/apiErrors"
)

// ListUsers responde GET /api/users com os registros normalizados da fonte
func ListUsers(service segmenting.Segmenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customers, err := service.ListCustomers(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, customers)
	}
}

func GetDashboardStats(service segmenting.Segmenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.GetDashboardStats(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, stats)
	}
}

// ListCohort responde GET /api/cohorts/:cohort?industry=&sort_by_margin=
func ListCohort(service segmenting.Segmenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())

		query := domain.ListQuery{
			Cohort:   domain.Cohort(strings.ToUpper(params.ByName("cohort"))),
			Industry: r.URL.Query().Get("industry"),
		}

		if raw := r.URL.Query().Get("sort_by_margin"); raw != "" {
			sortByMargin, err := strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "sort_by_margin deve ser booleano", nil)
				return
			}
			query.SortByMargin = sortByMargin
		}

		result, err := service.ListCohort(r.Context(), query)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, result)
	}
}

func GetCustomerDetail(service segmenting.Segmenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		detail, err := service.GetCustomerDetail(r.Context(), customerID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, detail)
	}
}

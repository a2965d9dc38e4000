package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/revenue-command-center/internal/domain"
)

// PulseStatusProvider expõe a janela do monitor de latência
type PulseStatusProvider interface {
	GetStatus() domain.PulseStatus
}

// serve adapta uma leitura sem parâmetros do caso de uso para um handler JSON
func serve[T any](fetch func(ctx context.Context) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := fetch(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, payload)
	}
}

// GetUserHistory responde GET /api/user-history/:id
func GetUserHistory(fetch func(ctx context.Context, customerID string) ([]domain.HistoryPoint, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		history, err := fetch(r.Context(), customerID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, r, history)
	}
}

// GetLivePulse responde com a janela atual do monitor de pulso
func GetLivePulse(monitor PulseStatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, monitor.GetStatus())
	}
}

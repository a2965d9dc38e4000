package handler

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/revenue-command-center/internal/domain"
	"github.com/vfg2006/revenue-command-center/internal/usecases/segmenting"
	"github.com/vfg2006/revenue-command-center/pkg/apiErrors"
	"github.com/vfg2006/revenue-command-center/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON serializa a resposta com status 200
func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError converte o erro do caso de uso no corpo padrão da API. Uma
// requisição cancelada pelo cliente não recebe corpo: o resultado é descartado.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) || r.Context().Err() != nil {
		return
	}

	var segmentErr *segmenting.SegmentError
	switch {
	case errors.As(err, &segmentErr):
		apiErrors.WriteError(w, segmentErr.Code, segmentErr.Err.Error(), segmentErr.Details)
	case errors.Is(err, domain.ErrUnsupported):
		apiErrors.WriteError(w, apiErrors.ErrNotSupported, err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		apiErrors.WriteError(w, apiErrors.ErrCommunication, "Tempo esgotado ao consultar a fonte de dados", nil)
	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro ao atender a requisição")
		apiErr := apiErrors.FromError(err, apiErrors.ErrExternalService)
		apiErrors.WriteError(w, apiErr.Code, apiErr.Message, nil)
	}
}

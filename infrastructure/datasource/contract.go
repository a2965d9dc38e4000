package datasource

import (
	"context"
	"strings"

	"github.com/vfg2006/revenue-command-center/internal/domain"
	"github.com/vfg2006/revenue-command-center/internal/metrics"
	"github.com/vfg2006/revenue-command-center/internal/validation"
	"github.com/vfg2006/revenue-command-center/pkg/log"
)

// checkRecords normaliza os registros e registra as violações de contrato sem descartar
// a coleção. Registros inválidos continuam na lista: um fornecedor desconhecido apenas
// soma custo zero.
func checkRecords(ctx context.Context, source string, m *metrics.Metrics, records []domain.CustomerRecord) []domain.CustomerRecord {
	checked := make([]domain.CustomerRecord, 0, len(records))

	for _, record := range records {
		if err := validation.ValidateRecord(record); err != nil {
			log.ForContext(ctx).WithFields(log.Fields{
				"source":      source,
				"customer_id": record.ID,
				"violations":  strings.Join(validation.Describe(err), "; "),
			}).Warn("Registro viola o contrato da fonte de dados")

			if m != nil {
				m.ContractViolations.WithLabelValues(source).Inc()
			}
		}

		checked = append(checked, record.Normalize())
	}

	return checked
}

func recordFailure(m *metrics.Metrics, source, operation string) {
	if m != nil {
		m.SourceFailuresTotal.WithLabelValues(source, operation).Inc()
	}
}

// Package segmenting responde às visões de coorte do painel: tiles, listas e detalhe
package segmenting

import (
	"context"
	"errors"

	"github.com/vfg2006/revenue-command-center/infrastructure/datasource"
	"github.com/vfg2006/revenue-command-center/internal/domain"
	"github.com/vfg2006/revenue-command-center/internal/metrics"
	"github.com/vfg2006/revenue-command-center/internal/validation"
	"github.com/vfg2006/revenue-command-center/pkg/apiErrors"
	"github.com/vfg2006/revenue-command-center/pkg/log"
)

type Segmenter interface {
	ListCustomers(ctx context.Context) ([]domain.CustomerRecord, error)
	GetDashboardStats(ctx context.Context) (domain.DashboardStats, error)
	ListCohort(ctx context.Context, query domain.ListQuery) (domain.ListResult, error)
	GetCustomerDetail(ctx context.Context, customerID string) (domain.CustomerDetail, error)
}

// customerFinder é implementado pelas fontes que buscam um cliente sem listar todos
type customerFinder interface {
	FindCustomer(ctx context.Context, id string) (domain.CustomerRecord, error)
}

type Service struct {
	source  datasource.Source
	metrics *metrics.Metrics
}

func NewService(source datasource.Source, m *metrics.Metrics) Segmenter {
	return &Service{
		source:  source,
		metrics: m,
	}
}

// customers busca os registros da fonte. Uma falha de busca é registrada e resolvida
// como lista vazia; com o contexto cancelado o resultado é descartado sem log.
func (s *Service) customers(ctx context.Context) ([]domain.CustomerRecord, error) {
	records, err := s.source.ListCustomers(ctx)
	if err == nil {
		return records, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"source":    s.source.Name(),
		"operation": "list_customers",
		"error":     err.Error(),
	}).Error("Falha ao buscar clientes, usando lista vazia")

	return []domain.CustomerRecord{}, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.CustomerRecord, error) {
	return s.customers(ctx)
}

func (s *Service) GetDashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	records, err := s.customers(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	stats := domain.ComputeDashboardStats(records)

	if s.metrics != nil {
		for _, cohort := range domain.Cohorts {
			s.metrics.CohortSize.WithLabelValues(string(cohort)).Set(float64(stats.Count(cohort)))
		}
	}

	return stats, nil
}

func (s *Service) ListCohort(ctx context.Context, query domain.ListQuery) (domain.ListResult, error) {
	if err := validation.ValidateListQuery(query); err != nil {
		return domain.ListResult{}, queryError(query, err)
	}

	records, err := s.customers(ctx)
	if err != nil {
		return domain.ListResult{}, err
	}

	result := domain.ListCustomers(records, query)

	log.ForContext(ctx).WithFields(log.Fields{
		"cohort":   string(query.Cohort),
		"industry": result.Industry,
	}).Debugf("Lista de coorte com %d clientes", result.Count)

	return result, nil
}

func queryError(query domain.ListQuery, err error) *SegmentError {
	details := validation.Describe(err)

	switch {
	case !domain.IsKnownCohort(string(query.Cohort)):
		return NewSegmentError(domain.ErrInvalidCohort, apiErrors.ErrInvalidCohort, details...)
	case query.Industry != "" && query.Industry != domain.IndustryAll && !domain.IsKnownIndustry(query.Industry):
		return NewSegmentError(domain.ErrInvalidIndustry, apiErrors.ErrInvalidIndustry, details...)
	default:
		return NewSegmentError(ErrInvalidQuery, apiErrors.ErrInvalidRequest, details...)
	}
}

func (s *Service) GetCustomerDetail(ctx context.Context, customerID string) (domain.CustomerDetail, error) {
	if customerID == "" {
		return domain.CustomerDetail{}, NewSegmentError(ErrCustomerIDRequired, apiErrors.ErrMissingRequiredData)
	}

	record, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return domain.CustomerDetail{}, err
	}

	return domain.NewCustomerDetail(record), nil
}

func (s *Service) findCustomer(ctx context.Context, customerID string) (domain.CustomerRecord, error) {
	if finder, ok := s.source.(customerFinder); ok {
		record, err := finder.FindCustomer(ctx, customerID)
		switch {
		case err == nil:
			return record, nil
		case errors.Is(err, domain.ErrCustomerNotFound):
			return domain.CustomerRecord{}, NewSegmentErrorWithID(domain.ErrCustomerNotFound, apiErrors.ErrCustomerNotFound, customerID)
		case ctx.Err() != nil:
			return domain.CustomerRecord{}, ctx.Err()
		default:
			log.ForContext(ctx).WithFields(log.Fields{
				"source":      s.source.Name(),
				"customer_id": customerID,
				"error":       err.Error(),
			}).Error("Falha ao buscar cliente")
			return domain.CustomerRecord{}, NewSegmentErrorWithID(ErrFetchCustomers, apiErrors.ErrExternalService, customerID)
		}
	}

	records, err := s.customers(ctx)
	if err != nil {
		return domain.CustomerRecord{}, err
	}

	for _, record := range records {
		if record.ID == customerID {
			return record, nil
		}
	}

	return domain.CustomerRecord{}, NewSegmentErrorWithID(domain.ErrCustomerNotFound, apiErrors.ErrCustomerNotFound, customerID)
}

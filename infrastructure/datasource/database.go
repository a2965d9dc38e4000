package datasource

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vfg2006/revenue-command-center/infrastructure/repository"
	"github.com/vfg2006/revenue-command-center/internal/domain"
	"github.com/vfg2006/revenue-command-center/internal/metrics"
)

const databaseSourceName = "database"

// Pinger é satisfeito pela conexão postgres
type Pinger interface {
	Ping(ctx context.Context) error
}

// DatabaseSource lê a tabela populada pelo seed. Funil, setores, quadro de ações e
// lista de risco são derivados dos registros; histórico e pulso não são persistidos.
type DatabaseSource struct {
	customers repository.CustomerRepository
	pinger    Pinger
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewDatabaseSource(customers repository.CustomerRepository, pinger Pinger, m *metrics.Metrics) *DatabaseSource {
	return &DatabaseSource{
		customers: customers,
		pinger:    pinger,
		metrics:   m,
		now:       time.Now,
	}
}

func (s *DatabaseSource) Name() string {
	return databaseSourceName
}

func (s *DatabaseSource) records(ctx context.Context, operation string) ([]domain.CustomerRecord, error) {
	records, err := s.customers.ListCustomers(ctx)
	if err != nil {
		recordFailure(s.metrics, databaseSourceName, operation)
		return nil, errors.Wrapf(err, "datasource database: %s", operation)
	}
	return checkRecords(ctx, databaseSourceName, s.metrics, records), nil
}

func (s *DatabaseSource) ListCustomers(ctx context.Context) ([]domain.CustomerRecord, error) {
	return s.records(ctx, "list_customers")
}

func (s *DatabaseSource) GetFunnelSnapshot(ctx context.Context) (domain.FunnelSnapshot, error) {
	records, err := s.records(ctx, "funnel")
	if err != nil {
		return domain.FunnelSnapshot{}, err
	}
	return snapshotFromRecords(records), nil
}

func (s *DatabaseSource) GetFunnelHistory(ctx context.Context) ([]domain.FunnelHistoryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []domain.FunnelHistoryItem{}, nil
}

func (s *DatabaseSource) GetSectorRevenue(ctx context.Context) (domain.SectorBreakdown, error) {
	records, err := s.records(ctx, "sectors")
	if err != nil {
		return nil, err
	}
	return domain.SectorRevenue(records), nil
}

func (s *DatabaseSource) GetCustomerHistory(ctx context.Context, _ string) ([]domain.HistoryPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []domain.HistoryPoint{}, nil
}

func (s *DatabaseSource) GetPulse(ctx context.Context) ([]domain.PulsePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []domain.PulsePoint{}, nil
}

func (s *DatabaseSource) GetCommandCenter(ctx context.Context) (domain.CommandCenterBoard, error) {
	records, err := s.records(ctx, "command_center")
	if err != nil {
		return domain.EmptyCommandCenterBoard(), err
	}
	return domain.BuildCommandCenter(records, s.now()), nil
}

// GetUsersAtRisk não tem latência persistida, então avg_latency fica zerada
func (s *DatabaseSource) GetUsersAtRisk(ctx context.Context) ([]domain.RiskUser, error) {
	records, err := s.records(ctx, "users_at_risk")
	if err != nil {
		return nil, err
	}
	return domain.BuildRiskUsers(records, nil), nil
}

func (s *DatabaseSource) SimulateTraffic(_ context.Context) (domain.TrafficSimulation, error) {
	return domain.TrafficSimulation{}, domain.ErrUnsupported
}

func (s *DatabaseSource) SampleLatency(ctx context.Context) (int, error) {
	if s.pinger == nil {
		return 0, domain.ErrUnsupported
	}

	start := time.Now()
	if err := s.pinger.Ping(ctx); err != nil {
		recordFailure(s.metrics, databaseSourceName, "ping")
		return 0, errors.Wrap(err, "datasource database: ping")
	}
	return int(time.Since(start).Milliseconds()), nil
}

// FindCustomer busca um único cliente direto pela chave primária
func (s *DatabaseSource) FindCustomer(ctx context.Context, id string) (domain.CustomerRecord, error) {
	record, err := s.customers.GetCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return domain.CustomerRecord{}, err
		}
		recordFailure(s.metrics, databaseSourceName, "find_customer")
		return domain.CustomerRecord{}, errors.Wrap(err, "datasource database: find_customer")
	}

	checked := checkRecords(ctx, databaseSourceName, s.metrics, []domain.CustomerRecord{*record})
	return checked[0], nil
}

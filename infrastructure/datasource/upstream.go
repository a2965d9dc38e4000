package datasource

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vfg2006/revenue-command-center/infrastructure/integrator/upstream/upstreamclient"
	"github.com/vfg2006/revenue-command-center/internal/domain"
	"github.com/vfg2006/revenue-command-center/internal/metrics"
)

const upstreamSourceName = "upstream"

// UpstreamSource repassa as leituras para a API REST original. Cada chamada é uma
// única tentativa; a falha é contabilizada e devolvida ao chamador.
type UpstreamSource struct {
	client  upstreamclient.Client
	metrics *metrics.Metrics
}

func NewUpstreamSource(client upstreamclient.Client, m *metrics.Metrics) *UpstreamSource {
	return &UpstreamSource{
		client:  client,
		metrics: m,
	}
}

func (s *UpstreamSource) Name() string {
	return upstreamSourceName
}

func (s *UpstreamSource) fail(err error, operation string) error {
	recordFailure(s.metrics, upstreamSourceName, operation)
	return errors.Wrapf(err, "datasource upstream: %s", operation)
}

func (s *UpstreamSource) ListCustomers(ctx context.Context) ([]domain.CustomerRecord, error) {
	records, err := s.client.GetUsers(ctx)
	if err != nil {
		return nil, s.fail(err, "list_customers")
	}
	return checkRecords(ctx, upstreamSourceName, s.metrics, records), nil
}

func (s *UpstreamSource) GetFunnelSnapshot(ctx context.Context) (domain.FunnelSnapshot, error) {
	snapshot, err := s.client.GetFunnel(ctx)
	if err != nil {
		return domain.FunnelSnapshot{}, s.fail(err, "funnel")
	}
	return snapshot, nil
}

// GetFunnelHistory não tem endpoint correspondente na API original
func (s *UpstreamSource) GetFunnelHistory(ctx context.Context) ([]domain.FunnelHistoryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []domain.FunnelHistoryItem{}, nil
}

func (s *UpstreamSource) GetSectorRevenue(ctx context.Context) (domain.SectorBreakdown, error) {
	sectors, err := s.client.GetSectors(ctx)
	if err != nil {
		return nil, s.fail(err, "sectors")
	}
	return sectors, nil
}

func (s *UpstreamSource) GetCustomerHistory(ctx context.Context, customerID string) ([]domain.HistoryPoint, error) {
	history, err := s.client.GetUserHistory(ctx, customerID)
	if err != nil {
		return nil, s.fail(err, "customer_history")
	}
	if history == nil {
		history = []domain.HistoryPoint{}
	}
	return history, nil
}

func (s *UpstreamSource) GetPulse(ctx context.Context) ([]domain.PulsePoint, error) {
	points, err := s.client.GetPulse(ctx)
	if err != nil {
		return nil, s.fail(err, "pulse")
	}
	if points == nil {
		points = []domain.PulsePoint{}
	}
	return points, nil
}

func (s *UpstreamSource) GetCommandCenter(ctx context.Context) (domain.CommandCenterBoard, error) {
	board, err := s.client.GetCommandCenterData(ctx)
	if err != nil {
		return domain.EmptyCommandCenterBoard(), s.fail(err, "command_center")
	}
	return board.Normalize(), nil
}

func (s *UpstreamSource) GetUsersAtRisk(ctx context.Context) ([]domain.RiskUser, error) {
	users, err := s.client.GetUsersAtRisk(ctx)
	if err != nil {
		return nil, s.fail(err, "users_at_risk")
	}
	if users == nil {
		users = []domain.RiskUser{}
	}
	return users, nil
}

func (s *UpstreamSource) SimulateTraffic(ctx context.Context) (domain.TrafficSimulation, error) {
	simulation, err := s.client.SimulateTraffic(ctx)
	if err != nil {
		return domain.TrafficSimulation{}, s.fail(err, "simulate_traffic")
	}
	if simulation.Details == nil {
		simulation.Details = []domain.CallEvent{}
	}
	return simulation, nil
}

// SampleLatency mede o tempo de resposta da raiz da API
func (s *UpstreamSource) SampleLatency(ctx context.Context) (int, error) {
	start := time.Now()
	if err := s.client.Ping(ctx); err != nil {
		return 0, s.fail(err, "ping")
	}
	return int(time.Since(start).Milliseconds()), nil
}

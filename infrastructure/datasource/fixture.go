package datasource

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/vfg2006/revenue-command-center/internal/config"
	"github.com/vfg2006/revenue-command-center/internal/domain"
	"github.com/vfg2006/revenue-command-center/internal/metrics"
)

const fixtureSourceName = "fixture"

// FixtureSource gera uma base determinística a partir da semente configurada.
// Os registros são gerados uma vez e nunca mudam; só o log de chamadas cresce
// com a simulação de tráfego, limitado ao tamanho configurado.
type FixtureSource struct {
	generator      *fixtureGenerator
	records        []domain.CustomerRecord
	funnelHistory  []domain.FunnelHistoryItem
	callLogSize    int
	simulatedCalls int
	now            func() time.Time

	mu    sync.Mutex
	calls []domain.CallEvent
	rng   *rand.Rand
}

func NewFixtureSource(cfg config.Fixture, m *metrics.Metrics) *FixtureSource {
	return newFixtureSource(cfg, m, time.Now)
}

func newFixtureSource(cfg config.Fixture, m *metrics.Metrics, now func() time.Time) *FixtureSource {
	if cfg.CallLogSize <= 0 {
		cfg.CallLogSize = 50
	}
	if cfg.SimulatedCalls <= 0 {
		cfg.SimulatedCalls = 20
	}

	generator := newFixtureGenerator(cfg.Seed, now())
	records := checkRecords(context.Background(), fixtureSourceName, m, generator.customers())

	return &FixtureSource{
		generator:      generator,
		records:        records,
		funnelHistory:  generator.funnelHistory(),
		callLogSize:    cfg.CallLogSize,
		simulatedCalls: cfg.SimulatedCalls,
		now:            now,
		calls:          generator.callLog(cfg.CallLogSize, records),
		rng:            generator.forKey("runtime"),
	}
}

func (s *FixtureSource) Name() string {
	return fixtureSourceName
}

// ListCustomers devolve uma cópia para que nenhum consumidor altere a base
func (s *FixtureSource) ListCustomers(ctx context.Context) ([]domain.CustomerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.records), nil
}

// GetFunnelSnapshot deriva o funil da base: signups são todos os clientes,
// trials os gratuitos ativos e pagos os planos pagos
func (s *FixtureSource) GetFunnelSnapshot(ctx context.Context) (domain.FunnelSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.FunnelSnapshot{}, err
	}
	return snapshotFromRecords(s.records), nil
}

func (s *FixtureSource) GetFunnelHistory(ctx context.Context) ([]domain.FunnelHistoryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.funnelHistory), nil
}

func (s *FixtureSource) GetSectorRevenue(ctx context.Context) (domain.SectorBreakdown, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return domain.SectorRevenue(s.records), nil
}

func (s *FixtureSource) GetCustomerHistory(ctx context.Context, customerID string) ([]domain.HistoryPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.generator.customerHistory(customerID), nil
}

func (s *FixtureSource) GetPulse(ctx context.Context) ([]domain.PulsePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.PulsePoints(s.calls), nil
}

func (s *FixtureSource) GetCommandCenter(ctx context.Context) (domain.CommandCenterBoard, error) {
	if err := ctx.Err(); err != nil {
		return domain.EmptyCommandCenterBoard(), err
	}
	return domain.BuildCommandCenter(s.records, s.now()), nil
}

func (s *FixtureSource) GetUsersAtRisk(ctx context.Context) ([]domain.RiskUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return domain.BuildRiskUsers(s.records, s.generator.averageLatency), nil
}

// SimulateTraffic registra novas chamadas no topo do log, descartando as mais antigas
func (s *FixtureSource) SimulateTraffic(ctx context.Context) (domain.TrafficSimulation, error) {
	if err := ctx.Err(); err != nil {
		return domain.TrafficSimulation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	simulated := make([]domain.CallEvent, 0, s.simulatedCalls)
	for i := 0; i < s.simulatedCalls; i++ {
		simulated = append(simulated, newCall(s.rng, now.Add(-time.Duration(i)*time.Second), s.records))
	}

	s.calls = append(slices.Clone(simulated), s.calls...)
	if len(s.calls) > s.callLogSize {
		s.calls = s.calls[:s.callLogSize]
	}

	return domain.TrafficSimulation{
		Message:        fmt.Sprintf("Simulated %d live calls", len(simulated)),
		SpikesDetected: domain.CountSpikes(simulated),
		Details:        simulated,
	}, nil
}

// SampleLatency simula a latência do pulso entre 100 e 900 ms
func (s *FixtureSource) SampleLatency(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return randomInt(s.rng, 100, 900), nil
}

func snapshotFromRecords(records []domain.CustomerRecord) domain.FunnelSnapshot {
	snapshot := domain.FunnelSnapshot{Signups: len(records)}
	for _, record := range records {
		switch {
		case record.Plan.IsPaid():
			snapshot.Paid++
		case record.Plan == domain.PlanFree && record.Status == domain.StatusActive:
			snapshot.Trials++
		}
	}
	return snapshot
}

// GenerateFixtureCustomers gera os mesmos registros que a fonte fixture serve para a
// semente informada; usado pelo seed do banco
func GenerateFixtureCustomers(seed uint64, now time.Time) []domain.CustomerRecord {
	records := newFixtureGenerator(seed, now).customers()
	normalized := make([]domain.CustomerRecord, 0, len(records))
	for _, record := range records {
		normalized = append(normalized, record.Normalize())
	}
	return normalized
}

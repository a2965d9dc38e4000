// Package datasource isola a origem dos dados do painel atrás de uma única interface.
// A implementação é escolhida uma vez na inicialização e nunca é alternada em execução.
package datasource

import (
	"context"
	"fmt"

	"github.com/vfg2006/revenue-command-center/infrastructure/integrator/upstream/upstreamclient"
	"github.com/vfg2006/revenue-command-center/infrastructure/repository"
	"github.com/vfg2006/revenue-command-center/internal/config"
	"github.com/vfg2006/revenue-command-center/internal/domain"
	"github.com/vfg2006/revenue-command-center/internal/metrics"
)

type Source interface {
	Name() string

	ListCustomers(ctx context.Context) ([]domain.CustomerRecord, error)
	GetFunnelSnapshot(ctx context.Context) (domain.FunnelSnapshot, error)
	GetFunnelHistory(ctx context.Context) ([]domain.FunnelHistoryItem, error)
	GetSectorRevenue(ctx context.Context) (domain.SectorBreakdown, error)
	GetCustomerHistory(ctx context.Context, customerID string) ([]domain.HistoryPoint, error)
	GetPulse(ctx context.Context) ([]domain.PulsePoint, error)
	GetCommandCenter(ctx context.Context) (domain.CommandCenterBoard, error)
	GetUsersAtRisk(ctx context.Context) ([]domain.RiskUser, error)
	SimulateTraffic(ctx context.Context) (domain.TrafficSimulation, error)

	// SampleLatency mede (ou simula) a latência atual da fonte, em milissegundos
	SampleLatency(ctx context.Context) (int, error)
}

// Dependencies reúne o que as implementações precisam; só o necessário para o tipo
// configurado precisa estar preenchido.
type Dependencies struct {
	Upstream  upstreamclient.Client
	Customers repository.CustomerRepository
	Pinger    Pinger
	Metrics   *metrics.Metrics
}

// New cria a fonte configurada em DATA_SOURCE
func New(cfg *config.Config, deps Dependencies) (Source, error) {
	switch cfg.DataSource.Kind {
	case config.DataSourceFixture:
		return NewFixtureSource(cfg.Fixture, deps.Metrics), nil
	case config.DataSourceUpstream:
		if deps.Upstream == nil {
			return nil, fmt.Errorf("datasource: cliente upstream não configurado")
		}
		return NewUpstreamSource(deps.Upstream, deps.Metrics), nil
	case config.DataSourceDatabase:
		if deps.Customers == nil {
			return nil, fmt.Errorf("datasource: repositório de clientes não configurado")
		}
		return NewDatabaseSource(deps.Customers, deps.Pinger, deps.Metrics), nil
	default:
		return nil, fmt.Errorf("datasource: tipo desconhecido %q", cfg.DataSource.Kind)
	}
}

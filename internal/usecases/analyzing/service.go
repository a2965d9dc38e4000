// Package analyzing agrega funil, setores, pulso e o quadro de ações do painel
package analyzing

import (
	"context"

	"github.com/vfg2006/revenue-command-center/infrastructure/datasource"
	"github.com/vfg2006/revenue-command-center/internal/domain"
	"github.com/vfg2006/revenue-command-center/pkg/log"
)

type Analyzer interface {
	GetFunnelSnapshot(ctx context.Context) (domain.FunnelSnapshot, error)
	GetFunnelReport(ctx context.Context) (domain.FunnelReport, error)
	GetFunnelHistory(ctx context.Context) ([]domain.FunnelHistoryItem, error)
	GetSectorRevenue(ctx context.Context) (domain.SectorBreakdown, error)
	GetSectorReport(ctx context.Context) (domain.SectorReport, error)
	GetCustomerHistory(ctx context.Context, customerID string) ([]domain.HistoryPoint, error)
	GetPulse(ctx context.Context) ([]domain.PulsePoint, error)
	GetCommandCenter(ctx context.Context) (domain.CommandCenterBoard, error)
	GetUsersAtRisk(ctx context.Context) ([]domain.RiskUser, error)
	SimulateTraffic(ctx context.Context) (domain.TrafficSimulation, error)
}

type Service struct {
	source datasource.Source
}

func NewService(source datasource.Source) Analyzer {
	return &Service{
		source: source,
	}
}

// fetch aplica a política de falha das leituras: o erro da fonte é registrado e o
// fallback é devolvido; com o contexto cancelado o resultado é descartado sem log.
func fetch[T any](ctx context.Context, s *Service, operation string, fallback T, fn func(context.Context) (T, error)) (T, error) {
	value, err := fn(ctx)
	if err == nil {
		return value, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		var zero T
		return zero, ctxErr
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"source":    s.source.Name(),
		"operation": operation,
		"error":     err.Error(),
	}).Error("Falha ao buscar dados da fonte, usando valor vazio")

	return fallback, nil
}

func (s *Service) GetFunnelSnapshot(ctx context.Context) (domain.FunnelSnapshot, error) {
	return fetch(ctx, s, "funnel", domain.FunnelSnapshot{}, s.source.GetFunnelSnapshot)
}

// GetFunnelReport agrega o snapshot; sem dados todas as taxas ficam zeradas
func (s *Service) GetFunnelReport(ctx context.Context) (domain.FunnelReport, error) {
	snapshot, err := s.GetFunnelSnapshot(ctx)
	if err != nil {
		return domain.FunnelReport{}, err
	}
	return domain.AggregateFunnel(snapshot), nil
}

func (s *Service) GetFunnelHistory(ctx context.Context) ([]domain.FunnelHistoryItem, error) {
	return fetch(ctx, s, "funnel_history", []domain.FunnelHistoryItem{}, s.source.GetFunnelHistory)
}

func (s *Service) GetSectorRevenue(ctx context.Context) (domain.SectorBreakdown, error) {
	return fetch(ctx, s, "sectors", domain.SectorBreakdown{}, s.source.GetSectorRevenue)
}

func (s *Service) GetSectorReport(ctx context.Context) (domain.SectorReport, error) {
	breakdown, err := s.GetSectorRevenue(ctx)
	if err != nil {
		return domain.SectorReport{}, err
	}
	return domain.AggregateSectors(breakdown), nil
}

func (s *Service) GetCustomerHistory(ctx context.Context, customerID string) ([]domain.HistoryPoint, error) {
	return fetch(ctx, s, "customer_history", []domain.HistoryPoint{}, func(ctx context.Context) ([]domain.HistoryPoint, error) {
		return s.source.GetCustomerHistory(ctx, customerID)
	})
}

func (s *Service) GetPulse(ctx context.Context) ([]domain.PulsePoint, error) {
	return fetch(ctx, s, "pulse", []domain.PulsePoint{}, s.source.GetPulse)
}

func (s *Service) GetCommandCenter(ctx context.Context) (domain.CommandCenterBoard, error) {
	return fetch(ctx, s, "command_center", domain.EmptyCommandCenterBoard(), s.source.GetCommandCenter)
}

func (s *Service) GetUsersAtRisk(ctx context.Context) ([]domain.RiskUser, error) {
	return fetch(ctx, s, "users_at_risk", []domain.RiskUser{}, s.source.GetUsersAtRisk)
}

// SimulateTraffic não tem fallback: a falha volta para o chamador
func (s *Service) SimulateTraffic(ctx context.Context) (domain.TrafficSimulation, error) {
	simulation, err := s.source.SimulateTraffic(ctx)
	if err != nil {
		return domain.TrafficSimulation{}, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"source": s.source.Name(),
	}).Infof("Tráfego simulado: %d picos detectados", simulation.SpikesDetected)

	return simulation, nil
}

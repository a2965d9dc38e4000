package upstreamclient

import (
	"context"
	"net/http"

	"github.com/vfg2006/revenue-command-center/internal/domain"
)

func (c *UpstreamClient) GetFunnel(ctx context.Context) (domain.FunnelSnapshot, error) {
	var response domain.FunnelSnapshot
	err := c.do(ctx, http.MethodGet, "/api/analytics/funnel", &response)
	return response, err
}

// GetSectors retorna o mapa vertical → receita exatamente como a API envia
func (c *UpstreamClient) GetSectors(ctx context.Context) (domain.SectorBreakdown, error) {
	response := make(domain.SectorBreakdown)
	err := c.do(ctx, http.MethodGet, "/api/analytics/sectors", &response)
	return response, err
}

func (c *UpstreamClient) GetPulse(ctx context.Context) ([]domain.PulsePoint, error) {
	var response []domain.PulsePoint
	err := c.do(ctx, http.MethodGet, "/api/analytics/pulse", &response)
	return response, err
}

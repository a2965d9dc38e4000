// Package upstreamclient fala com a API REST de demonstração que originalmente alimentava o painel
package upstreamclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/vfg2006/revenue-command-center/internal/config"
	"github.com/vfg2006/revenue-command-center/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	GetUsers(ctx context.Context) ([]domain.CustomerRecord, error)
	GetUsersAtRisk(ctx context.Context) ([]domain.RiskUser, error)
	GetFunnel(ctx context.Context) (domain.FunnelSnapshot, error)
	GetSectors(ctx context.Context) (domain.SectorBreakdown, error)
	GetPulse(ctx context.Context) ([]domain.PulsePoint, error)
	GetUserHistory(ctx context.Context, userID string) ([]domain.HistoryPoint, error)
	GetCommandCenterData(ctx context.Context) (domain.CommandCenterBoard, error)
	SimulateTraffic(ctx context.Context) (domain.TrafficSimulation, error)
	Ping(ctx context.Context) error
}

// StatusError é retornado quando a API responde com status diferente de 2xx
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream: %s %s respondeu %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

type UpstreamClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient cria o cliente com o timeout configurado. Não há retentativas:
// cada chamada é uma única tentativa.
func NewClient(cfg *config.Config) Client {
	return &UpstreamClient{
		httpClient: &http.Client{
			Timeout: cfg.Upstream.Timeout,
		},
		baseURL: cfg.Upstream.BaseURL,
	}
}

func (c *UpstreamClient) GetUsers(ctx context.Context) ([]domain.CustomerRecord, error) {
	var response []domain.CustomerRecord
	err := c.do(ctx, http.MethodGet, "/api/users", &response)
	return response, err
}

func (c *UpstreamClient) GetUsersAtRisk(ctx context.Context) ([]domain.RiskUser, error) {
	var response []domain.RiskUser
	err := c.do(ctx, http.MethodGet, "/api/users/risk", &response)
	return response, err
}

func (c *UpstreamClient) GetUserHistory(ctx context.Context, userID string) ([]domain.HistoryPoint, error) {
	var response []domain.HistoryPoint
	err := c.do(ctx, http.MethodGet, "/api/user-history/"+url.PathEscape(userID), &response)
	return response, err
}

func (c *UpstreamClient) GetCommandCenterData(ctx context.Context) (domain.CommandCenterBoard, error) {
	var response domain.CommandCenterBoard
	err := c.do(ctx, http.MethodGet, "/api/command-center-data", &response)
	return response, err
}

func (c *UpstreamClient) SimulateTraffic(ctx context.Context) (domain.TrafficSimulation, error) {
	var response domain.TrafficSimulation
	err := c.do(ctx, http.MethodPost, "/api/simulate-traffic", &response)
	return response, err
}

// Ping consulta a raiz da API; usado pela sonda de latência
func (c *UpstreamClient) Ping(ctx context.Context) error {
	var response map[string]any
	return c.do(ctx, http.MethodGet, "/api", &response)
}

func (c *UpstreamClient) do(ctx context.Context, method, endpointPath string, out any) error {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return errors.Wrap(err, "upstream: erro ao analisar a URL base")
	}
	// endpointPath chega já escapado; Path guarda a forma decodificada e RawPath a original,
	// assim um "/" dentro de um ID continua sendo %2F
	rawPath := strings.TrimSuffix(endpoint.EscapedPath(), "/") + endpointPath
	decodedPath, err := url.PathUnescape(rawPath)
	if err != nil {
		return errors.Wrapf(err, "upstream: caminho inválido %s", endpointPath)
	}
	endpoint.Path, endpoint.RawPath = decodedPath, rawPath

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), nil)
	if err != nil {
		return errors.Wrap(err, "upstream: erro ao criar a requisição")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "upstream: erro ao executar %s %s", method, endpointPath)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			Method:     method,
			Path:       endpointPath,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "upstream: erro ao decodificar a resposta de %s", endpointPath)
	}

	return nil
}

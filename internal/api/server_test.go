package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/revenue-command-center/infrastructure/datasource/mocks"
	"github.com/vfg2006/revenue-command-center/internal/config"
	"github.com/vfg2006/revenue-command-center/internal/domain"
	"github.com/vfg2006/revenue-command-center/internal/metrics"
	"github.com/vfg2006/revenue-command-center/internal/usecases/analyzing"
	"github.com/vfg2006/revenue-command-center/internal/usecases/segmenting"
	"github.com/vfg2006/revenue-command-center/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type staticPulse struct {
	status domain.PulseStatus
}

func (s staticPulse) GetStatus() domain.PulseStatus {
	return s.status
}

func apiRecords() []domain.CustomerRecord {
	return []domain.CustomerRecord{
		{
			ID: "user-1", Name: "Mary Smith", Company: "TechCorp LLC", Industry: domain.IndustryBFSI,
			Plan: domain.PlanEnterprise, Status: domain.StatusActive, Revenue: 4000, UsageCount: 2000,
			UsageTrend: domain.UsageTrendStable, CostPerMin: 0.095, PricePerMin: 0.15,
			Stack: domain.Some(domain.StackConfig{LLM: "gpt-4", TTS: "elevenlabs", Telephony: "twilio"}),
		},
		{
			ID: "user-2", Name: "John Brown", Company: "BlueSky Inc", Industry: domain.IndustryEdTech,
			Plan: domain.PlanPro, Status: domain.StatusActive, Revenue: 1200, UsageCount: 900,
			UsageTrend: domain.UsageTrendIncreasing, CostPerMin: 0.06, PricePerMin: 0.12,
		},
		{
			ID: "user-3", Name: "Linda Davis", Company: "DataFlow Group", Industry: domain.IndustryBFSI,
			Plan: domain.PlanFree, Status: domain.StatusActive, UsageCount: 450,
			UsageTrend: domain.UsageTrendIncreasing, CostPerMin: 0.06, PricePerMin: 0.15,
		},
	}
}

func newTestHandler(t *testing.T, setup func(source *mocks.MockSource)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Name().Return("fixture").AnyTimes()
	if setup != nil {
		setup(source)
	}

	cfg := &config.Config{Cors: config.Cors{AllowedOrigins: []string{"http://localhost:3000"}}}

	return NewHandler(cfg, Services{
		SourceName: "fixture",
		Segmenter:  segmenting.NewService(source, nil),
		Analyzer:   analyzing.NewService(source),
		PulseMonitor: staticPulse{status: domain.PulseStatus{
			Samples:     []domain.PulseSample{{Time: time.Unix(0, 0).UTC(), LatencyMs: 640}},
			Latest:      domain.Some(domain.PulseSample{Time: time.Unix(0, 0).UTC(), LatencyMs: 640}),
			Unstable:    true,
			ThresholdMs: 500,
			Running:     true,
		}},
	})
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_Root(t *testing.T) {
	rec := do(t, newTestHandler(t, nil), http.MethodGet, "/api")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "fixture", body["data_source"])
	assert.NotEmpty(t, body["message"])
}

func TestRoutes_Users(t *testing.T) {
	h := newTestHandler(t, func(source *mocks.MockSource) {
		source.EXPECT().ListCustomers(gomock.Any()).Return(apiRecords(), nil)
	})

	rec := do(t, h, http.MethodGet, "/api/users")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 3)
	assert.Equal(t, 36.7, body[0]["margin_percent"])
	assert.Equal(t, map[string]any{"llm": "gpt-4", "tts": "elevenlabs", "telephony": "twilio"}, body[0]["stack_config"])
	assert.Nil(t, body[1]["stack_config"])
}

func TestRoutes_DashboardStats(t *testing.T) {
	h := newTestHandler(t, func(source *mocks.MockSource) {
		source.EXPECT().ListCustomers(gomock.Any()).Return(apiRecords(), nil)
	})

	rec := do(t, h, http.MethodGet, "/api/dashboard/stats")

	require.Equal(t, http.StatusOK, rec.Code)
	var stats domain.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.CashCows)
	assert.Equal(t, 5200.0, stats.CashCowsRevenue)
	assert.Equal(t, 1, stats.ConversionTargets)
}

func TestRoutes_Cohorts(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		fetch      bool
		wantStatus int
		wantIDs    []string
		wantCode   string
	}{
		{
			name:       "cash cows ordenados por margem",
			target:     "/api/cohorts/CASH_COWS?sort_by_margin=true",
			fetch:      true,
			wantStatus: http.StatusOK,
			wantIDs:    []string{"user-1", "user-2"},
		},
		{
			name:       "coorte em minúsculas com filtro de vertical",
			target:     "/api/cohorts/cash_cows?industry=EdTech",
			fetch:      true,
			wantStatus: http.StatusOK,
			wantIDs:    []string{"user-2"},
		},
		{
			name:       "coorte desconhecida",
			target:     "/api/cohorts/WHALES",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidCohort,
		},
		{
			name:       "vertical desconhecida",
			target:     "/api/cohorts/CHURN?industry=Mining",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidIndustry,
		},
		{
			name:       "flag de ordenação inválida",
			target:     "/api/cohorts/CHURN?sort_by_margin=talvez",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, func(source *mocks.MockSource) {
				if tt.fetch {
					source.EXPECT().ListCustomers(gomock.Any()).Return(apiRecords(), nil)
				}
			})

			rec := do(t, h, http.MethodGet, tt.target)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var apiErr apiErrors.APIError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}

			var result struct {
				Count     int `json:"count"`
				Customers []struct {
					ID string `json:"id"`
				} `json:"customers"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			ids := make([]string, 0, len(result.Customers))
			for _, c := range result.Customers {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(tt.wantIDs), result.Count)
		})
	}
}

func TestRoutes_CustomerDetail(t *testing.T) {
	t.Run("detalhe com economia unitária", func(t *testing.T) {
		h := newTestHandler(t, func(source *mocks.MockSource) {
			source.EXPECT().ListCustomers(gomock.Any()).Return(apiRecords(), nil)
		})

		rec := do(t, h, http.MethodGet, "/api/customers/user-1")

		require.Equal(t, http.StatusOK, rec.Code)
		var detail domain.CustomerDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
		assert.Equal(t, "user-1", detail.Customer.ID)
		assert.Equal(t, 36.7, detail.Economics.MarginPercent)
		assert.False(t, detail.Economics.Savings.IsPresent())
	})

	t.Run("cliente inexistente", func(t *testing.T) {
		h := newTestHandler(t, func(source *mocks.MockSource) {
			source.EXPECT().ListCustomers(gomock.Any()).Return(apiRecords(), nil)
		})

		rec := do(t, h, http.MethodGet, "/api/customers/user-404")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrCustomerNotFound)
	})
}

func TestRoutes_FunnelReport(t *testing.T) {
	h := newTestHandler(t, func(source *mocks.MockSource) {
		source.EXPECT().GetFunnelSnapshot(gomock.Any()).Return(domain.FunnelSnapshot{Signups: 150, Trials: 85, Paid: 42}, nil)
	})

	rec := do(t, h, http.MethodGet, "/api/analytics/funnel/report")

	require.Equal(t, http.StatusOK, rec.Code)
	var report domain.FunnelReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 28.0, report.ConversionRate)
	assert.Equal(t, 5400.0, report.RevenueOpportunity)
}

func TestRoutes_SourceFailureServesEmptyCollections(t *testing.T) {
	h := newTestHandler(t, func(source *mocks.MockSource) {
		source.EXPECT().GetUsersAtRisk(gomock.Any()).Return(nil, errors.New("timeout"))
		source.EXPECT().GetCommandCenter(gomock.Any()).Return(domain.CommandCenterBoard{}, errors.New("timeout"))
	})

	rec := do(t, h, http.MethodGet, "/api/users/risk")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/command-center-data")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"churn_risk":[],"new_arrivals":[],"top_performers":[]}`, rec.Body.String())
}

func TestRoutes_UserHistory(t *testing.T) {
	h := newTestHandler(t, func(source *mocks.MockSource) {
		source.EXPECT().GetCustomerHistory(gomock.Any(), "user-7").Return([]domain.HistoryPoint{
			{Day: "Day 0", Calls: 120, Latency: 300},
		}, nil)
	})

	rec := do(t, h, http.MethodGet, "/api/user-history/user-7")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"day":"Day 0","calls":120,"latency":300}]`, rec.Body.String())
}

func TestRoutes_SimulateTraffic(t *testing.T) {
	t.Run("simulação aceita apenas POST", func(t *testing.T) {
		rec := do(t, newTestHandler(t, nil), http.MethodGet, "/api/simulate-traffic")

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("fonte sem suporte", func(t *testing.T) {
		h := newTestHandler(t, func(source *mocks.MockSource) {
			source.EXPECT().SimulateTraffic(gomock.Any()).Return(domain.TrafficSimulation{}, domain.ErrUnsupported)
		})

		rec := do(t, h, http.MethodPost, "/api/simulate-traffic")

		assert.Equal(t, http.StatusNotImplemented, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrNotSupported)
	})
}

func TestRoutes_LivePulse(t *testing.T) {
	rec := do(t, newTestHandler(t, nil), http.MethodGet, "/api/analytics/pulse/live")

	require.Equal(t, http.StatusOK, rec.Code)
	var status domain.PulseStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Unstable)
	assert.Len(t, status.Samples, 1)
}

func TestRoutes_Cors(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/users", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutes_NotFound(t *testing.T) {
	rec := do(t, newTestHandler(t, nil), http.MethodGet, "/api/unknown")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), apiErrors.ErrNotFound))
}

func TestRoutes_Healthcheck(t *testing.T) {
	rec := do(t, newTestHandler(t, nil), http.MethodGet, "/healthcheck")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_MetricsExposeRoutePattern(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Name().Return("fixture").AnyTimes()
	source.EXPECT().GetCustomerHistory(gomock.Any(), "user-9").Return([]domain.HistoryPoint{}, nil)

	h := NewHandler(&config.Config{}, Services{
		SourceName:   "fixture",
		Segmenter:    segmenting.NewService(source, nil),
		Analyzer:     analyzing.NewService(source),
		PulseMonitor: staticPulse{},
		Metrics:      metrics.New(),
	})

	rec := do(t, h, http.MethodGet, "/api/user-history/user-9")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "revenue_http_requests_total")
	assert.Contains(t, body, `route="/api/user-history/:id"`)
	assert.NotContains(t, body, `route="/api/user-history/user-9"`)
}

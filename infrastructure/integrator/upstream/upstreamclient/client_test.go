package upstreamclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/revenue-command-center/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.Config{
		Upstream: config.Upstream{BaseURL: server.URL, Timeout: time.Second},
	})
}

func TestUpstreamClient_GetUsers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"u0","name":"Alice Sterling","company":"Sterling Corp","industry":"BFSI","plan":"Enterprise","usage_count":15420,"revenue":12500,"usage_trend":"Stable","margin_percent":24.5}]`))
	})

	users, err := client.GetUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u0", users[0].ID)
	assert.Equal(t, 12500.0, users[0].Revenue)
	assert.False(t, users[0].Stack.IsPresent())
}

func TestUpstreamClient_GetFunnelAndSectors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/analytics/funnel":
			w.Write([]byte(`{"signups":150,"trials":85,"paid":42}`))
		case "/api/analytics/sectors":
			w.Write([]byte(`{"BFSI":52000,"Health Tech":24800}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	funnel, err := client.GetFunnel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150, funnel.Signups)
	assert.Equal(t, 42, funnel.Paid)

	sectors, err := client.GetSectors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 52000.0, sectors["BFSI"])
	assert.Len(t, sectors, 2)
}

func TestUpstreamClient_UserHistoryEscapesID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user-history/user-7", r.URL.Path)
		w.Write([]byte(`[{"day":"Day 0","calls":120,"latency":300}]`))
	})

	history, err := client.GetUserHistory(context.Background(), "user-7")

	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Day 0", history[0].Day)
	assert.Equal(t, 300, history[0].Latency)
}

func TestUpstreamClient_SimulateTrafficUsesPost(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"message":"Simulated 20 live calls","spikes_detected":3,"details":[{"created_at":"2025-01-10T10:00:00.123456","latency_ms":1300}]}`))
	})

	result, err := client.SimulateTraffic(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, result.SpikesDetected)
	require.Len(t, result.Details, 1)
	assert.Equal(t, 2025, result.Details[0].CreatedAt.Year())
}

func TestUpstreamClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		validate func(t *testing.T, err error)
	}{
		{
			name: "Status 500 - StatusError com o corpo",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("boom"))
			},
			validate: func(t *testing.T, err error) {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
				assert.Equal(t, "boom", statusErr.Body)
			},
		},
		{
			name: "JSON inválido - erro de decodificação",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"signups":`))
			},
			validate: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "decodificar")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.GetFunnel(context.Background())
			require.Error(t, err)
			tt.validate(t, err)
		})
	}
}

func TestUpstreamClient_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetUsers(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUpstreamClient_GetUserHistoryEscapesIDOnce(t *testing.T) {
	tests := []struct {
		name        string
		userID      string
		wantPath    string
		wantRawPath string
	}{
		{
			name:     "ID com espaço",
			userID:   "user 1",
			wantPath: "/api/user-history/user 1",
		},
		{
			name:        "ID com barra continua um único segmento",
			userID:      "acme/42",
			wantPath:    "/api/user-history/acme/42",
			wantRawPath: "/api/user-history/acme%2F42",
		},
		{
			name:     "ID com percentual",
			userID:   "50%off",
			wantPath: "/api/user-history/50%off",
		},
		{
			name:     "ID com interrogação não vira query",
			userID:   "who?",
			wantPath: "/api/user-history/who?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Empty(t, r.URL.RawQuery)
				if tt.wantRawPath != "" {
					assert.Equal(t, tt.wantRawPath, r.URL.RawPath)
				}
				w.Write([]byte(`[]`))
			})

			_, err := client.GetUserHistory(context.Background(), tt.userID)

			require.NoError(t, err)
		})
	}
}

func TestUpstreamClient_BaseURLWithPathPrefix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/api/users", r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(&config.Config{
		Upstream: config.Upstream{BaseURL: server.URL + "/demo/", Timeout: time.Second},
	})

	_, err := client.GetUsers(context.Background())

	require.NoError(t, err)
}

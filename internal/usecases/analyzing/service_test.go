package analyzing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/revenue-command-center/infrastructure/datasource/mocks"
	"github.com/vfg2006/revenue-command-center/internal/domain"
)

func TestService_GetFunnelReport(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(source *mocks.MockSource)
		validate func(t *testing.T, report domain.FunnelReport)
	}{
		{
			name: "agrega o snapshot da fonte",
			setup: func(source *mocks.MockSource) {
				source.EXPECT().GetFunnelSnapshot(gomock.Any()).Return(domain.FunnelSnapshot{Signups: 150, Trials: 85, Paid: 42}, nil)
			},
			validate: func(t *testing.T, report domain.FunnelReport) {
				assert.Equal(t, 28.0, report.ConversionRate)
				assert.Equal(t, 72, report.DropOffRate)
				assert.Equal(t, 5400.0, report.RevenueOpportunity)
				require.Len(t, report.Stages, 3)
				assert.Equal(t, 57, report.Stages[1].ConversionPercent)
			},
		},
		{
			name: "falha da fonte resulta em funil zerado",
			setup: func(source *mocks.MockSource) {
				source.EXPECT().GetFunnelSnapshot(gomock.Any()).Return(domain.FunnelSnapshot{}, errors.New("502"))
				source.EXPECT().Name().Return("upstream")
			},
			validate: func(t *testing.T, report domain.FunnelReport) {
				assert.Equal(t, domain.FunnelSnapshot{}, report.Snapshot)
				assert.Zero(t, report.ConversionRate)
				assert.Zero(t, report.DropOffRate)
				assert.Zero(t, report.RevenueOpportunity)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := mocks.NewMockSource(ctrl)
			tt.setup(source)

			report, err := NewService(source).GetFunnelReport(context.Background())

			require.NoError(t, err)
			tt.validate(t, report)
		})
	}
}

func TestService_GetSectorReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().GetSectorRevenue(gomock.Any()).Return(domain.SectorBreakdown{
		"BFSI":        52000,
		"Health Tech": 24800,
	}, nil)

	report, err := NewService(source).GetSectorReport(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Sectors, 2)
	assert.Equal(t, "BFSI", report.Sectors[0].Name)
	top, ok := report.Top.Get()
	require.True(t, ok)
	assert.Equal(t, 67.7, top.TopShare)
}

func TestService_GetSectorReportWithoutData(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().GetSectorRevenue(gomock.Any()).Return(nil, errors.New("timeout"))
	source.EXPECT().Name().Return("upstream")

	report, err := NewService(source).GetSectorReport(context.Background())

	require.NoError(t, err)
	assert.Empty(t, report.Sectors)
	assert.False(t, report.Top.IsPresent())
}

func TestService_FallbacksAreEmptyCollections(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	failure := errors.New("connection refused")
	source.EXPECT().Name().Return("upstream").AnyTimes()
	source.EXPECT().GetFunnelHistory(gomock.Any()).Return(nil, failure)
	source.EXPECT().GetCustomerHistory(gomock.Any(), "user-1").Return(nil, failure)
	source.EXPECT().GetPulse(gomock.Any()).Return(nil, failure)
	source.EXPECT().GetCommandCenter(gomock.Any()).Return(domain.CommandCenterBoard{}, failure)
	source.EXPECT().GetUsersAtRisk(gomock.Any()).Return(nil, failure)

	service := NewService(source)
	ctx := context.Background()

	history, err := service.GetFunnelHistory(ctx)
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)

	points, err := service.GetCustomerHistory(ctx, "user-1")
	require.NoError(t, err)
	assert.NotNil(t, points)

	pulse, err := service.GetPulse(ctx)
	require.NoError(t, err)
	assert.NotNil(t, pulse)

	board, err := service.GetCommandCenter(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.EmptyCommandCenterBoard(), board)

	users, err := service.GetUsersAtRisk(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
}

func TestService_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().GetPulse(gomock.Any()).Return(nil, context.Canceled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(source).GetPulse(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_SimulateTraffic(t *testing.T) {
	t.Run("repassa a simulação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockSource(ctrl)
		source.EXPECT().SimulateTraffic(gomock.Any()).Return(domain.TrafficSimulation{
			Message:        "Simulated 20 live calls",
			SpikesDetected: 3,
		}, nil)
		source.EXPECT().Name().Return("fixture")

		simulation, err := NewService(source).SimulateTraffic(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, simulation.SpikesDetected)
	})

	t.Run("fonte sem suporte devolve o erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := mocks.NewMockSource(ctrl)
		source.EXPECT().SimulateTraffic(gomock.Any()).Return(domain.TrafficSimulation{}, domain.ErrUnsupported)

		_, err := NewService(source).SimulateTraffic(context.Background())

		assert.ErrorIs(t, err, domain.ErrUnsupported)
	})
}

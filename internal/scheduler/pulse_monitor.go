// Package scheduler contém os serviços agendados da aplicação
package scheduler

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/revenue-command-center/internal/config"
	"github.com/vfg2006/revenue-command-center/internal/domain"
	"github.com/vfg2006/revenue-command-center/internal/metrics"
	"github.com/vfg2006/revenue-command-center/pkg/log"
)

// LatencyProbe mede a latência atual da fonte de dados em milissegundos
type LatencyProbe interface {
	SampleLatency(ctx context.Context) (int, error)
}

type PulseMonitorConfig struct {
	Enabled             bool
	Interval            time.Duration
	Window              int
	UnstableThresholdMs int
}

// PulseMonitor amostra a latência periodicamente e mantém apenas as amostras mais
// recentes. É cosmético: nenhuma outra visão depende dele.
type PulseMonitor struct {
	scheduler *gocron.Scheduler
	probe     LatencyProbe
	metrics   *metrics.Metrics
	config    PulseMonitorConfig
	now       func() time.Time

	mu      sync.Mutex
	samples []domain.PulseSample
	running bool
}

func NewPulseMonitor(probe LatencyProbe, m *metrics.Metrics, cfg *config.Config) *PulseMonitor {
	pulseConfig := PulseMonitorConfig{
		Enabled:             cfg.Pulse.Enabled,
		Interval:            cfg.Pulse.Interval,
		Window:              cfg.Pulse.Window,
		UnstableThresholdMs: cfg.Pulse.UnstableThresholdMs,
	}

	logrus.WithFields(logrus.Fields{
		"pulse_interval": pulseConfig.Interval.String(),
		"pulse_window":   pulseConfig.Window,
	}).Info("Configuração do monitor de pulso carregada")

	return &PulseMonitor{
		scheduler: gocron.NewScheduler(time.UTC),
		probe:     probe,
		metrics:   m,
		config:    pulseConfig,
		now:       time.Now,
		samples:   make([]domain.PulseSample, 0, pulseConfig.Window),
	}
}

func (p *PulseMonitor) Start(ctx context.Context) error {
	if !p.config.Enabled {
		logrus.Info("Monitor de pulso desabilitado por configuração")
		return nil
	}

	p.scheduler.SingletonModeAll()

	_, err := p.scheduler.Every(p.config.Interval).Do(func() {
		sampleCtx, cancel := context.WithTimeout(ctx, p.config.Interval)
		defer cancel()
		p.Sample(sampleCtx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar o monitor de pulso: %w", err)
	}

	p.scheduler.StartAsync()
	p.setRunning(true)

	// Para o agendador quando o contexto da aplicação é cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando monitor de pulso")
		p.scheduler.Stop()
		p.setRunning(false)
	}()

	return nil
}

func (p *PulseMonitor) setRunning(running bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = running
}

// Sample coleta uma amostra e descarta as que saíram da janela
func (p *PulseMonitor) Sample(ctx context.Context) {
	latency, err := p.probe.SampleLatency(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.ForContext(ctx).WithFields(log.Fields{
				"operation": "pulse_sample",
				"error":     err.Error(),
			}).Warn("Falha ao amostrar a latência")
		}
		return
	}

	sample := domain.PulseSample{Time: p.now(), LatencyMs: latency}

	p.mu.Lock()
	p.samples = append(p.samples, sample)
	if overflow := len(p.samples) - p.config.Window; overflow > 0 {
		p.samples = slices.Delete(p.samples, 0, overflow)
	}
	p.mu.Unlock()

	if p.metrics != nil {
		p.metrics.PulseLatency.Set(float64(latency))
		if p.isUnstable(latency) {
			p.metrics.PulseUnstable.Set(1)
		} else {
			p.metrics.PulseUnstable.Set(0)
		}
	}
}

func (p *PulseMonitor) isUnstable(latency int) bool {
	return latency > p.config.UnstableThresholdMs
}

// GetStatus retorna a janela atual do monitor
func (p *PulseMonitor) GetStatus() domain.PulseStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := domain.PulseStatus{
		Samples:     slices.Clone(p.samples),
		Latest:      domain.None[domain.PulseSample](),
		ThresholdMs: p.config.UnstableThresholdMs,
		Running:     p.running,
	}

	if len(p.samples) > 0 {
		latest := p.samples[len(p.samples)-1]
		status.Latest = domain.Some(latest)
		status.Unstable = p.isUnstable(latest.LatencyMs)
	}

	return status
}

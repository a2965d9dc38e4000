package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/revenue-command-center/internal/api/handler"
	"github.com/vfg2006/revenue-command-center/internal/api/handler/router"
	"github.com/vfg2006/revenue-command-center/internal/config"
	"github.com/vfg2006/revenue-command-center/internal/metrics"
	"github.com/vfg2006/revenue-command-center/internal/usecases/analyzing"
	"github.com/vfg2006/revenue-command-center/internal/usecases/segmenting"
	"github.com/vfg2006/revenue-command-center/pkg/middleware"
)

type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// Services reúne o que as rotas precisam
type Services struct {
	SourceName   string
	Segmenter    segmenting.Segmenter
	Analyzer     analyzing.Analyzer
	PulseMonitor handler.PulseStatusProvider
	Metrics      *metrics.Metrics
}

// NewHandler monta o router com a cadeia de middlewares
func NewHandler(cfg *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithMetrics(services.Metrics),
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Compatibility(services.Segmenter, services.Analyzer, services.SourceName)...),
		router.WithRoutes(handler.Segments(services.Segmenter)...),
		router.WithRoutes(handler.Analytics(services.Analyzer, services.PulseMonitor)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(cfg *config.Config, services Services) (*Server, error) {
	if services.Segmenter == nil || services.Analyzer == nil || services.PulseMonitor == nil {
		return nil, errors.New("api: serviços obrigatórios não configurados")
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": s.shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}

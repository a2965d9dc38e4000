package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/revenue-command-center/infrastructure/database/postgres"
	"github.com/vfg2006/revenue-command-center/infrastructure/datasource"
	"github.com/vfg2006/revenue-command-center/infrastructure/integrator/upstream/upstreamclient"
	"github.com/vfg2006/revenue-command-center/infrastructure/repository"
	"github.com/vfg2006/revenue-command-center/internal/api"
	"github.com/vfg2006/revenue-command-center/internal/config"
	"github.com/vfg2006/revenue-command-center/internal/metrics"
	"github.com/vfg2006/revenue-command-center/internal/scheduler"
	"github.com/vfg2006/revenue-command-center/internal/usecases/analyzing"
	"github.com/vfg2006/revenue-command-center/internal/usecases/segmenting"
	pkglog "github.com/vfg2006/revenue-command-center/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	pkglog.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()

	deps := datasource.Dependencies{Metrics: m}

	switch cfg.DataSource.Kind {
	case config.DataSourceUpstream:
		deps.Upstream = upstreamclient.NewClient(cfg)
	case config.DataSourceDatabase:
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		deps.Customers = repository.NewCustomerRepository(pgConn)
		deps.Pinger = pgConn
	}

	source, err := datasource.New(cfg, deps)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar a fonte de dados")
	}

	logrus.WithField("data_source", source.Name()).Info("Fonte de dados configurada")

	segmenter := segmenting.NewService(source, m)
	analyzer := analyzing.NewService(source)

	pulseMonitor := scheduler.NewPulseMonitor(source, m, cfg)
	if err := pulseMonitor.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o monitor de pulso")
	}

	server, err := api.New(cfg, api.Services{
		SourceName:   source.Name(),
		Segmenter:    segmenter,
		Analyzer:     analyzer,
		PulseMonitor: pulseMonitor,
		Metrics:      m,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

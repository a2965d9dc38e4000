// Script de seed: cria a tabela users e grava os clientes gerados pela fonte fixture,
// para que o serviço possa subir com DATA_SOURCE=database
package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/revenue-command-center/infrastructure/database/postgres"
	"github.com/vfg2006/revenue-command-center/infrastructure/datasource"
	"github.com/vfg2006/revenue-command-center/infrastructure/repository"
	"github.com/vfg2006/revenue-command-center/internal/config"
	pkglog "github.com/vfg2006/revenue-command-center/pkg/log"
)

const seedTimeout = 2 * time.Minute

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	pkglog.Setup(cfg.App.LogLevel)
	logrus.Info("Iniciando seed da tabela de clientes...")

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if _, err := conn.Exec(ctx, repository.CreateCustomersTable); err != nil {
		logrus.WithError(err).Fatal("Erro ao criar a tabela users")
	}

	startTime := time.Now()
	records := datasource.GenerateFixtureCustomers(cfg.Fixture.Seed, startTime)

	inserted, err := repository.NewCustomerRepository(conn).ReplaceCustomers(ctx, records)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao gravar clientes")
	}

	logrus.WithFields(logrus.Fields{
		"inserted":     inserted,
		"fixture_seed": cfg.Fixture.Seed,
		"elapsed":      time.Since(startTime).String(),
	}).Info("Seed concluído com sucesso")
}

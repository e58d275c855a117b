// Package app monta as dependências compartilhadas pela API e pela linha de comando
package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/database/postgres"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/integrator/sheets"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/migration"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/repository"
	"github.com/vfg2006/ad-revenue-sync/internal/config"
	"github.com/vfg2006/ad-revenue-sync/internal/scheduler"
	"github.com/vfg2006/ad-revenue-sync/internal/usecases/syncing"
)

// ConfigureLogger configura o formato e o nível dos logs
func ConfigureLogger(level string) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)
}

// Connect abre a conexão com o PostgreSQL e aplica a migração quando DATABASE_AUTO_MIGRATE=true
func Connect(ctx context.Context, cfg *config.Config) (*postgres.Connection, error) {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

	if cfg.Database.AutoMigrate {
		if err := migration.Migrate(ctx, conn); err != nil {
			conn.Close()
			return nil, err
		}
	}

	return conn, nil
}

// NewRevenueSyncService monta o pipeline completo: exportação, repositórios e agendador
func NewRevenueSyncService(conn postgres.Queryer, cfg *config.Config) *scheduler.RevenueSyncService {
	timeout := time.Duration(cfg.RevenueSync.RequestTimeoutSeconds) * time.Second
	downloader := sheets.New(cfg.RevenueSync, sheetsclient.NewClient(timeout))

	syncer := syncing.NewService(
		downloader,
		repository.NewClientRepository(conn),
		repository.NewDailyRevenueRepository(conn),
		repository.NewHolidayRepository(conn),
		cfg.RevenueSync,
	)

	return scheduler.NewRevenueSyncService(syncer, &syncing.RunLock{}, cfg)
}

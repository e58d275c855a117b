package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-revenue-sync/internal/api"
	"github.com/vfg2006/ad-revenue-sync/internal/app"
	"github.com/vfg2006/ad-revenue-sync/internal/config"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	app.ConfigureLogger(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn, err := app.Connect(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer pgConn.Close()

	revenueSyncService := app.NewRevenueSyncService(pgConn, cfg)

	// Inicia o agendador em background
	if err := revenueSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador da planilha de receita")
	} else {
		logrus.Info("Agendador da planilha de receita iniciado com sucesso")
	}

	server, err := api.New(cfg, pgConn, revenueSyncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}

	// Cancela execuções em andamento e espera terminarem antes de fechar a conexão
	cancel()
	revenueSyncService.Wait()
}

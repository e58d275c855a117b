package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/database/postgres"
	"github.com/vfg2006/ad-revenue-sync/internal/app"
	"github.com/vfg2006/ad-revenue-sync/internal/config"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "revenuesync",
		Short:         "Sincroniza a planilha de receita diária com o banco",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(newAppendCmd(), newReplaceCmd(), newMigrateCmd())
	return cmd
}

// setup carrega a configuração, o logger e a conexão. O contexto é cancelado por SIGINT/SIGTERM.
func setup(cmd *cobra.Command) (context.Context, *config.Config, *postgres.Connection, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	app.ConfigureLogger(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)

	conn, err := app.Connect(ctx, cfg)
	if err != nil {
		stop()
		return nil, nil, nil, nil, err
	}

	cleanup := func() {
		conn.Close()
		stop()
	}
	return ctx, cfg, conn, cleanup, nil
}

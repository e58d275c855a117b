package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/migration"
	"github.com/vfg2006/ad-revenue-sync/internal/app"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
)

func newAppendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "append",
		Short: "Grava as linhas a partir da última data já sincronizada",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, conn, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := app.NewRevenueSyncService(conn, cfg).RunAppend(ctx)
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newReplaceCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "replace",
		Short: "Remove o intervalo informado e grava novamente as linhas da planilha",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, conn, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := app.NewRevenueSyncService(conn, cfg).RunReplace(ctx, startDate, endDate)
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "data inicial (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "data final (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Cria as tabelas clients, daily_revenue e holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, conn, cleanup, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return migration.Migrate(ctx, conn)
		},
	}
}

func printResult(w io.Writer, result *domain.SyncResult) {
	if result.UpToDate {
		fmt.Fprintf(w, "[%s] %s: nada novo para sincronizar\n", result.RunID, result.Mode)
		return
	}

	fmt.Fprintf(w, "[%s] %s: %d registros, %d clientes novos, %d renomeados, %d linhas ignoradas em %s\n",
		result.RunID,
		result.Mode,
		result.RecordCount,
		result.NewClients,
		result.RenamedClients,
		result.SkippedRows,
		result.FinishedAt.Sub(result.StartedAt).Round(1e6),
	)
}

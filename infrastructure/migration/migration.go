// Package migration cria as tabelas usadas pela sincronização da planilha de receita
package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/database/postgres"
)

type step struct {
	name string
	ddl  string
}

// steps são idempotentes e executados em ordem
var steps = []step{
	{
		name: "clients",
		ddl: `CREATE TABLE IF NOT EXISTS clients (
			client_id   TEXT PRIMARY KEY,
			client_name TEXT NOT NULL,
			manager_id  BIGINT,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "daily_revenue",
		ddl: `CREATE TABLE IF NOT EXISTS daily_revenue (
			id          BIGSERIAL PRIMARY KEY,
			date        DATE NOT NULL,
			client_id   TEXT NOT NULL,
			client_name TEXT NOT NULL,
			amount      BIGINT NOT NULL,
			manager_id  BIGINT,
			is_holiday  BOOLEAN NOT NULL DEFAULT FALSE,
			vimp        BIGINT,
			click       BIGINT,
			conversion  BIGINT,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT daily_revenue_date_client_id_key UNIQUE (date, client_id)
		)`,
	},
	{
		name: "daily_revenue_date_idx",
		ddl:  `CREATE INDEX IF NOT EXISTS daily_revenue_date_idx ON daily_revenue (date)`,
	},
	{
		name: "holidays",
		ddl: `CREATE TABLE IF NOT EXISTS holidays (
			date DATE PRIMARY KEY,
			name TEXT
		)`,
	},
}

// Migrate cria as tabelas clients, daily_revenue e holidays quando ainda não existem
func Migrate(ctx context.Context, conn postgres.Queryer) error {
	logrus.Infof("Iniciando migração de %d etapas...", len(steps))
	startTime := time.Now()

	for _, s := range steps {
		if _, err := conn.ExecContext(ctx, s.ddl); err != nil {
			return fmt.Errorf("erro na migração %s: %w", s.name, err)
		}
		logrus.WithField("step", s.name).Debug("Etapa de migração aplicada")
	}

	logrus.Infof("Migração concluída em %v", time.Since(startTime))
	return nil
}

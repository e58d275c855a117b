package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/database/postgres"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
)

const (
	dailyRevenueTable = "daily_revenue"
)

var dailyRevenueColumns = []string{
	"date",
	"client_id",
	"client_name",
	"amount",
	"manager_id",
	"is_holiday",
	"vimp",
	"click",
	"conversion",
}

//go:generate mockgen -source=daily_revenue.go -destination=mocks/daily_revenue_mock.go -package=mocks

// DailyRevenueRepository acessa a tabela fato daily_revenue, única por (date, client_id)
type DailyRevenueRepository interface {
	// LatestDate retorna a maior data gravada ou "" quando a tabela está vazia
	LatestDate(ctx context.Context) (string, error)
	ListFrom(ctx context.Context, date string) ([]*domain.DailyRevenue, error)
	UpsertBatch(ctx context.Context, rows []*domain.DailyRevenue) error
	InsertBatch(ctx context.Context, rows []*domain.DailyRevenue) error
	DeleteRange(ctx context.Context, startDate, endDate string) (int64, error)
}

type dailyRevenueRepository struct {
	conn postgres.Queryer
}

func NewDailyRevenueRepository(conn postgres.Queryer) DailyRevenueRepository {
	return &dailyRevenueRepository{
		conn: conn,
	}
}

func (r *dailyRevenueRepository) LatestDate(ctx context.Context) (string, error) {
	query, args, err := squirrel.
		Select("date").
		From(dailyRevenueTable).
		OrderBy("date DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	var latest time.Time
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&latest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("erro ao buscar a última data: %w", err)
	}

	return latest.Format(time.DateOnly), nil
}

func (r *dailyRevenueRepository) ListFrom(ctx context.Context, date string) ([]*domain.DailyRevenue, error) {
	query, args, err := squirrel.
		Select(dailyRevenueColumns...).
		From(dailyRevenueTable).
		Where(squirrel.GtOrEq{"date": date}).
		OrderBy("date ASC", "client_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	revenues := make([]*domain.DailyRevenue, 0)
	for rows.Next() {
		revenue, err := r.scanRevenue(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear receita diária: %w", err)
		}
		revenues = append(revenues, revenue)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return revenues, nil
}

// UpsertBatch grava o lote sobrescrevendo linhas já existentes para a mesma (date, client_id)
func (r *dailyRevenueRepository) UpsertBatch(ctx context.Context, rows []*domain.DailyRevenue) error {
	return r.insert(ctx, rows, `
		ON CONFLICT (date, client_id) DO UPDATE SET
			client_name = EXCLUDED.client_name,
			amount = EXCLUDED.amount,
			manager_id = EXCLUDED.manager_id,
			is_holiday = EXCLUDED.is_holiday,
			vimp = EXCLUDED.vimp,
			click = EXCLUDED.click,
			conversion = EXCLUDED.conversion,
			updated_at = NOW()
	`)
}

// InsertBatch grava o lote sem tratamento de conflito; uma chave repetida retorna ErrConflict
func (r *dailyRevenueRepository) InsertBatch(ctx context.Context, rows []*domain.DailyRevenue) error {
	return r.insert(ctx, rows, "")
}

func (r *dailyRevenueRepository) insert(ctx context.Context, rows []*domain.DailyRevenue, suffix string) error {
	if len(rows) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert(dailyRevenueTable).
		Columns(dailyRevenueColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, row := range rows {
		query = query.Values(
			row.Date,
			row.ClientID,
			row.ClientName,
			row.Amount,
			row.ManagerID,
			row.IsHoliday,
			row.Vimp,
			row.Click,
			row.Conversion,
		)
	}

	if suffix != "" {
		query = query.Suffix(suffix)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao gravar %d linhas de receita: %w", len(rows), describePQError(err))
	}

	return nil
}

func (r *dailyRevenueRepository) DeleteRange(ctx context.Context, startDate, endDate string) (int64, error) {
	query, args, err := squirrel.
		Delete(dailyRevenueTable).
		Where(squirrel.GtOrEq{"date": startDate}).
		Where(squirrel.LtOrEq{"date": endDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", describePQError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *dailyRevenueRepository) scanRevenue(rows *sql.Rows) (*domain.DailyRevenue, error) {
	revenue := &domain.DailyRevenue{}
	var date time.Time
	var managerID, vimp, click, conv sql.NullInt64

	err := rows.Scan(
		&date,
		&revenue.ClientID,
		&revenue.ClientName,
		&revenue.Amount,
		&managerID,
		&revenue.IsHoliday,
		&vimp,
		&click,
		&conv,
	)
	if err != nil {
		return nil, err
	}

	revenue.Date = date.Format(time.DateOnly)
	revenue.ManagerID = nullableInt64(managerID)
	revenue.Vimp = nullableInt64(vimp)
	revenue.Click = nullableInt64(click)
	revenue.Conversion = nullableInt64(conv)

	return revenue, nil
}

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/database/postgres"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
)

const holidaysTable = "holidays"

//go:generate mockgen -source=holiday.go -destination=mocks/holiday_mock.go -package=mocks

// HolidayRepository lê a tabela de feriados; o pipeline de sincronização apenas consulta
type HolidayRepository interface {
	ListHolidays(ctx context.Context) (domain.HolidaySet, error)
}

type holidayRepository struct {
	conn postgres.Queryer
}

func NewHolidayRepository(conn postgres.Queryer) HolidayRepository {
	return &holidayRepository{
		conn: conn,
	}
}

func (r *holidayRepository) ListHolidays(ctx context.Context) (domain.HolidaySet, error) {
	query, args, err := squirrel.
		Select("date").
		From(holidaysTable).
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

	holidays := domain.NewHolidaySet()
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("erro ao escanear feriado: %w", err)
		}
		holidays[date.Format(time.DateOnly)] = struct{}{}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return holidays, nil
}

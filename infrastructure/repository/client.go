// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/database/postgres"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
)

const (
	clientsTable = "clients"
)

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks

// ClientRepository acessa a tabela de dimensão clients.
// Nunca remove clientes e nunca altera manager_id, que pertence às telas de configuração.
type ClientRepository interface {
	ListClients(ctx context.Context) ([]*domain.Client, error)
	ExistingIDs(ctx context.Context, clientIDs []string) (map[string]struct{}, error)
	InsertClients(ctx context.Context, clients []*domain.Client) error
	InsertClient(ctx context.Context, client *domain.Client) error
	UpdateClientName(ctx context.Context, clientID, clientName string) error
}

type clientRepository struct {
	conn postgres.Queryer
}

func NewClientRepository(conn postgres.Queryer) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

func (r *clientRepository) ListClients(ctx context.Context) ([]*domain.Client, error) {
	query, args, err := squirrel.
		Select("client_id", "client_name", "manager_id").
		From(clientsTable).
		OrderBy("client_id ASC").
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

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client := &domain.Client{}
		var managerID sql.NullInt64

		if err := rows.Scan(&client.ClientID, &client.ClientName, &managerID); err != nil {
			return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
		}

		if managerID.Valid {
			id := managerID.Int64
			client.ManagerID = &id
		}

		clients = append(clients, client)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return clients, nil
}

// ExistingIDs retorna quais dos IDs informados já existem. Quem chama é responsável por
// respeitar o limite de IDs por requisição.
func (r *clientRepository) ExistingIDs(ctx context.Context, clientIDs []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(clientIDs))
	if len(clientIDs) == 0 {
		return existing, nil
	}

	query, args, err := squirrel.
		Select("client_id").
		From(clientsTable).
		Where(squirrel.Eq{"client_id": clientIDs}).
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

	for rows.Next() {
		var clientID string
		if err := rows.Scan(&clientID); err != nil {
			return nil, fmt.Errorf("erro ao escanear client_id: %w", err)
		}
		existing[clientID] = struct{}{}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return existing, nil
}

func (r *clientRepository) InsertClients(ctx context.Context, clients []*domain.Client) error {
	if len(clients) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert(clientsTable).
		Columns("client_id", "client_name", "manager_id").
		PlaceholderFormat(squirrel.Dollar)

	for _, client := range clients {
		query = query.Values(client.ClientID, client.ClientName, client.ManagerID)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao inserir %d clientes: %w", len(clients), describePQError(err))
	}

	return nil
}

func (r *clientRepository) InsertClient(ctx context.Context, client *domain.Client) error {
	if err := r.InsertClients(ctx, []*domain.Client{client}); err != nil {
		return fmt.Errorf("cliente %s: %w", client.ClientID, err)
	}
	return nil
}

func (r *clientRepository) UpdateClientName(ctx context.Context, clientID, clientName string) error {
	query, args, err := squirrel.
		Update(clientsTable).
		Set("client_name", clientName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"client_id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar nome do cliente %s: %w", clientID, describePQError(err))
	}

	return nil
}

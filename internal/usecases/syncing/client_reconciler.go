package syncing

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/repository"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
	"github.com/vfg2006/ad-revenue-sync/pkg/metrics"
)

// ReconcileResult resume o que foi gravado na tabela de clientes
type ReconcileResult struct {
	Inserted int
	Renamed  int
	Failed   int
}

// ClientReconciler grava clientes novos e renomeados. Nunca remove clientes e nunca altera manager_id.
type ClientReconciler struct {
	clientRepo repository.ClientRepository
	chunkSize  int
}

func NewClientReconciler(clientRepo repository.ClientRepository, chunkSize int) *ClientReconciler {
	if chunkSize <= 0 {
		chunkSize = 500
	}

	return &ClientReconciler{
		clientRepo: clientRepo,
		chunkSize:  chunkSize,
	}
}

// Reconcile separa os candidatos entre já existentes e realmente novos, insere os novos em lote
// (com fallback linha a linha) e atualiza o nome dos existentes
func (r *ClientReconciler) Reconcile(ctx context.Context, candidates []*domain.ClientCandidate) (*ReconcileResult, error) {
	result := &ReconcileResult{}

	clients := dedupeCandidates(candidates)
	if len(clients) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(clients))
	for _, client := range clients {
		ids = append(ids, client.ClientID)
	}

	existing, err := r.existingIDs(ctx, ids)
	if err != nil {
		return result, err
	}

	reallyNew := make([]*domain.Client, 0)
	toRename := make([]*domain.Client, 0)
	for _, client := range clients {
		if _, ok := existing[client.ClientID]; ok {
			toRename = append(toRename, client)
		} else {
			reallyNew = append(reallyNew, client)
		}
	}

	if len(reallyNew) > 0 {
		inserted, failed := r.insertClients(ctx, reallyNew)
		result.Inserted = inserted
		result.Failed = failed
	}

	for _, client := range toRename {
		if err := r.clientRepo.UpdateClientName(ctx, client.ClientID, client.ClientName); err != nil {
			return result, err
		}
		result.Renamed++
	}

	metrics.AddClients("inserted", result.Inserted)
	metrics.AddClients("renamed", result.Renamed)
	metrics.AddClients("failed", result.Failed)

	logrus.WithFields(logrus.Fields{
		"inserted": result.Inserted,
		"renamed":  result.Renamed,
		"failed":   result.Failed,
	}).Info("Clientes reconciliados")

	return result, nil
}

// existingIDs consulta os IDs em blocos de chunkSize até esgotar a lista
func (r *ClientReconciler) existingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(ids))

	for start := 0; start < len(ids); start += r.chunkSize {
		end := min(start+r.chunkSize, len(ids))

		found, err := r.clientRepo.ExistingIDs(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}

		for id := range found {
			existing[id] = struct{}{}
		}
	}

	return existing, nil
}

func (r *ClientReconciler) insertClients(ctx context.Context, clients []*domain.Client) (inserted, failed int) {
	err := r.clientRepo.InsertClients(ctx, clients)
	if err == nil {
		return len(clients), 0
	}

	logrus.WithError(err).WithField("count", len(clients)).
		Warn("Falha na inserção em lote de clientes, tentando linha a linha")

	for _, client := range clients {
		if err := r.clientRepo.InsertClient(ctx, client); err != nil {
			logrus.WithError(err).WithField("client_id", client.ClientID).Error("Erro ao inserir cliente")
			failed++
			continue
		}
		inserted++
	}

	return inserted, failed
}

// dedupeCandidates mantém um cliente por client_id, na ordem de aparição; a última ocorrência vence
func dedupeCandidates(candidates []*domain.ClientCandidate) []*domain.Client {
	index := make(map[string]int, len(candidates))
	clients := make([]*domain.Client, 0, len(candidates))

	for _, candidate := range candidates {
		if candidate == nil || candidate.ClientID == "" {
			continue
		}

		client := &domain.Client{
			ClientID:   candidate.ClientID,
			ClientName: candidate.ClientName,
		}

		if i, ok := index[client.ClientID]; ok {
			clients[i] = client
			continue
		}

		index[client.ClientID] = len(clients)
		clients = append(clients, client)
	}

	return clients
}

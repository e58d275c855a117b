package syncing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/repository"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
	"go.uber.org/mock/gomock"
)

func newCandidate(id, name string, change domain.ClientChange) *domain.ClientCandidate {
	return &domain.ClientCandidate{
		Client: domain.Client{ClientID: id, ClientName: name},
		Change: change,
	}
}

func TestClientReconciler_Reconcile(t *testing.T) {
	ctx := context.Background()
	errDB := errors.New("falha no banco")

	tests := []struct {
		name       string
		chunkSize  int
		candidates []*domain.ClientCandidate
		setup      func(repo *mocks.MockClientRepository)
		expected   *ReconcileResult
		wantErr    bool
	}{
		{
			name:       "Sem candidatos não consulta o banco",
			chunkSize:  500,
			candidates: nil,
			setup:      func(repo *mocks.MockClientRepository) {},
			expected:   &ReconcileResult{},
		},
		{
			name:      "Separa novos e existentes",
			chunkSize: 500,
			candidates: []*domain.ClientCandidate{
				newCandidate("001", "Loja A", domain.ClientChangeRenamed),
				newCandidate("007", "Loja 7", domain.ClientChangeNew),
			},
			setup: func(repo *mocks.MockClientRepository) {
				repo.EXPECT().
					ExistingIDs(ctx, []string{"001", "007"}).
					Return(map[string]struct{}{"001": {}}, nil)

				repo.EXPECT().
					InsertClients(ctx, []*domain.Client{{ClientID: "007", ClientName: "Loja 7"}}).
					Return(nil)

				repo.EXPECT().
					UpdateClientName(ctx, "001", "Loja A").
					Return(nil)
			},
			expected: &ReconcileResult{Inserted: 1, Renamed: 1},
		},
		{
			name:      "Candidato que já existe no banco vira atualização",
			chunkSize: 500,
			candidates: []*domain.ClientCandidate{
				newCandidate("002", "Loja B", domain.ClientChangeNew),
			},
			setup: func(repo *mocks.MockClientRepository) {
				repo.EXPECT().
					ExistingIDs(ctx, []string{"002"}).
					Return(map[string]struct{}{"002": {}}, nil)

				repo.EXPECT().
					UpdateClientName(ctx, "002", "Loja B").
					Return(nil)
			},
			expected: &ReconcileResult{Renamed: 1},
		},
		{
			name:      "Consulta em blocos",
			chunkSize: 2,
			candidates: []*domain.ClientCandidate{
				newCandidate("1", "A", domain.ClientChangeNew),
				newCandidate("2", "B", domain.ClientChangeNew),
				newCandidate("3", "C", domain.ClientChangeNew),
				newCandidate("4", "D", domain.ClientChangeNew),
				newCandidate("5", "E", domain.ClientChangeNew),
			},
			setup: func(repo *mocks.MockClientRepository) {
				gomock.InOrder(
					repo.EXPECT().ExistingIDs(ctx, []string{"1", "2"}).Return(map[string]struct{}{}, nil),
					repo.EXPECT().ExistingIDs(ctx, []string{"3", "4"}).Return(map[string]struct{}{}, nil),
					repo.EXPECT().ExistingIDs(ctx, []string{"5"}).Return(map[string]struct{}{}, nil),
				)

				repo.EXPECT().InsertClients(ctx, gomock.Len(5)).Return(nil)
			},
			expected: &ReconcileResult{Inserted: 5},
		},
		{
			name:      "Falha no lote insere linha a linha",
			chunkSize: 500,
			candidates: []*domain.ClientCandidate{
				newCandidate("001", "Loja A", domain.ClientChangeNew),
				newCandidate("002", "Loja B", domain.ClientChangeNew),
				newCandidate("003", "Loja C", domain.ClientChangeNew),
			},
			setup: func(repo *mocks.MockClientRepository) {
				repo.EXPECT().ExistingIDs(ctx, gomock.Any()).Return(map[string]struct{}{}, nil)
				repo.EXPECT().InsertClients(ctx, gomock.Any()).Return(errDB)

				repo.EXPECT().InsertClient(ctx, &domain.Client{ClientID: "001", ClientName: "Loja A"}).Return(nil)
				repo.EXPECT().InsertClient(ctx, &domain.Client{ClientID: "002", ClientName: "Loja B"}).Return(errDB)
				repo.EXPECT().InsertClient(ctx, &domain.Client{ClientID: "003", ClientName: "Loja C"}).Return(nil)
			},
			expected: &ReconcileResult{Inserted: 2, Failed: 1},
		},
		{
			// Entre ExistingIDs e a inserção não há lock no banco: só o RunLock impede duas
			// execuções simultâneas. Se outro escritor gravar o mesmo client_id nesse intervalo,
			// o conflito conta como falha da linha e a reconciliação segue com os demais.
			name:      "Cliente gravado por outro escritor após a consulta",
			chunkSize: 500,
			candidates: []*domain.ClientCandidate{
				newCandidate("042", "Loja 42", domain.ClientChangeNew),
				newCandidate("043", "Loja 43", domain.ClientChangeNew),
				newCandidate("001", "Loja A", domain.ClientChangeRenamed),
			},
			setup: func(repo *mocks.MockClientRepository) {
				repo.EXPECT().
					ExistingIDs(ctx, []string{"042", "043", "001"}).
					Return(map[string]struct{}{"001": {}}, nil)

				repo.EXPECT().InsertClients(ctx, gomock.Len(2)).Return(repository.ErrConflict)
				repo.EXPECT().
					InsertClient(ctx, &domain.Client{ClientID: "042", ClientName: "Loja 42"}).
					Return(repository.ErrConflict)
				repo.EXPECT().
					InsertClient(ctx, &domain.Client{ClientID: "043", ClientName: "Loja 43"}).
					Return(nil)

				repo.EXPECT().UpdateClientName(ctx, "001", "Loja A").Return(nil)
			},
			expected: &ReconcileResult{Inserted: 1, Renamed: 1, Failed: 1},
		},
		{
			name:      "Candidatos duplicados viram um único cliente",
			chunkSize: 500,
			candidates: []*domain.ClientCandidate{
				newCandidate("001", "Nome antigo", domain.ClientChangeNew),
				newCandidate("001", "Loja A", domain.ClientChangeNew),
			},
			setup: func(repo *mocks.MockClientRepository) {
				repo.EXPECT().ExistingIDs(ctx, []string{"001"}).Return(map[string]struct{}{}, nil)
				repo.EXPECT().
					InsertClients(ctx, []*domain.Client{{ClientID: "001", ClientName: "Loja A"}}).
					Return(nil)
			},
			expected: &ReconcileResult{Inserted: 1},
		},
		{
			name:      "Erro na consulta interrompe",
			chunkSize: 500,
			candidates: []*domain.ClientCandidate{
				newCandidate("001", "Loja A", domain.ClientChangeNew),
			},
			setup: func(repo *mocks.MockClientRepository) {
				repo.EXPECT().ExistingIDs(ctx, gomock.Any()).Return(nil, errDB)
			},
			expected: &ReconcileResult{},
			wantErr:  true,
		},
		{
			name:      "Erro na atualização interrompe",
			chunkSize: 500,
			candidates: []*domain.ClientCandidate{
				newCandidate("001", "Loja A", domain.ClientChangeRenamed),
			},
			setup: func(repo *mocks.MockClientRepository) {
				repo.EXPECT().ExistingIDs(ctx, gomock.Any()).Return(map[string]struct{}{"001": {}}, nil)
				repo.EXPECT().UpdateClientName(ctx, "001", "Loja A").Return(errDB)
			},
			expected: &ReconcileResult{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockClientRepository(ctrl)
			tt.setup(repo)

			reconciler := NewClientReconciler(repo, tt.chunkSize)
			result, err := reconciler.Reconcile(ctx, tt.candidates)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errDB)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

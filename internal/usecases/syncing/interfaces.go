package syncing

import (
	"context"

	"github.com/vfg2006/ad-revenue-sync/internal/domain"
)

// SheetDownloader baixa a exportação da planilha de receita
type SheetDownloader interface {
	Download(ctx context.Context) (*domain.SheetExport, error)
}

// RevenueSyncer expõe as duas formas de sincronizar a planilha com o banco
type RevenueSyncer interface {
	// AppendSync grava (upsert) as linhas com data igual ou posterior à última data gravada
	AppendSync(ctx context.Context, progress ProgressFunc) (*domain.SyncResult, error)

	// ReplaceRangeSync remove o intervalo [startDate, endDate] e insere novamente as linhas da planilha
	ReplaceRangeSync(ctx context.Context, startDate, endDate string, progress ProgressFunc) (*domain.SyncResult, error)
}

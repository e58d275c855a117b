package syncing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/repository"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
)

// WriteMode define como os lotes são gravados na tabela fato
type WriteMode int

const (
	// WriteUpsert sobrescreve a linha existente com a mesma (date, client_id)
	WriteUpsert WriteMode = iota
	// WriteInsert é uma inserção simples; conflito é erro de lote
	WriteInsert
)

func (m WriteMode) String() string {
	if m == WriteInsert {
		return "insert"
	}
	return "upsert"
}

// BatchReportFunc recebe o percentual e o detalhe após cada lote gravado
type BatchReportFunc func(percent int, detail string)

// BatchWriter grava as receitas em lotes sequenciais de tamanho fixo
type BatchWriter struct {
	revenueRepo repository.DailyRevenueRepository
	batchSize   int
}

func NewBatchWriter(revenueRepo repository.DailyRevenueRepository, batchSize int) *BatchWriter {
	if batchSize <= 0 {
		batchSize = 1000
	}

	return &BatchWriter{
		revenueRepo: revenueRepo,
		batchSize:   batchSize,
	}
}

// WriteBatches grava os registros lote a lote. O primeiro erro interrompe a gravação e é
// retornado como *SyncError com o índice do lote (base 1).
func (w *BatchWriter) WriteBatches(ctx context.Context, records []*domain.DailyRevenue, mode WriteMode, report BatchReportFunc) (int, error) {
	total := len(records)
	totalBatches := (total + w.batchSize - 1) / w.batchSize
	written := 0

	for batch := 0; batch < totalBatches; batch++ {
		if err := ctx.Err(); err != nil {
			return written, newStageError(StageCancelled, "", err)
		}

		start := batch * w.batchSize
		end := min(start+w.batchSize, total)
		rows := records[start:end]

		var err error
		if mode == WriteInsert {
			err = w.revenueRepo.InsertBatch(ctx, rows)
		} else {
			err = w.revenueRepo.UpsertBatch(ctx, rows)
		}
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"batch": batch + 1,
				"mode":  mode.String(),
				"rows":  len(rows),
			}).Error("Erro ao gravar lote de receitas")
			return written, newBatchError(batch+1, err)
		}

		written += len(rows)

		if report != nil {
			report(uploadPercent(batch+1, totalBatches), fmt.Sprintf("%d / %d registros", written, total))
		}
	}

	return written, nil
}

package syncing

import (
	"time"

	"github.com/vfg2006/ad-revenue-sync/internal/domain"
)

// Limites da faixa de progresso reservada ao envio dos lotes
const (
	uploadStartPercent = 55
	uploadEndPercent   = 95
)

// ProgressFunc recebe os eventos de progresso de uma execução
type ProgressFunc func(domain.SyncProgress)

// progressReporter garante percentuais não decrescentes e um estado terminal em toda execução
type progressReporter struct {
	sink    ProgressFunc
	runID   string
	mode    domain.SyncMode
	stage   string
	percent int
}

func newProgressReporter(sink ProgressFunc, runID string, mode domain.SyncMode) *progressReporter {
	return &progressReporter{sink: sink, runID: runID, mode: mode}
}

func (p *progressReporter) report(stage string, percent int, detail string) {
	p.emit(stage, percent, detail, domain.SyncStatusRunning)
}

func (p *progressReporter) done(detail string) {
	p.emit(StageComplete, 100, detail, domain.SyncStatusDone)
}

// fail emite o estado terminal de erro mantendo o último percentual atingido
func (p *progressReporter) fail(stage string, err error) {
	if stage == "" {
		stage = p.stage
	}
	p.emit(stage, p.percent, err.Error(), domain.SyncStatusError)
}

func (p *progressReporter) emit(stage string, percent int, detail string, status domain.SyncStatus) {
	if percent > 100 {
		percent = 100
	}
	if percent < p.percent {
		percent = p.percent
	}

	p.stage = stage
	p.percent = percent

	if p.sink == nil {
		return
	}

	p.sink(domain.SyncProgress{
		RunID:     p.runID,
		Mode:      p.mode,
		Stage:     stage,
		Percent:   percent,
		Detail:    detail,
		Status:    status,
		UpdatedAt: time.Now(),
	})
}

// uploadPercent interpola linearmente entre 55% e 95% conforme os lotes enviados
func uploadPercent(batchIndex, totalBatches int) int {
	if totalBatches <= 0 {
		return uploadEndPercent
	}
	return uploadStartPercent + (uploadEndPercent-uploadStartPercent)*batchIndex/totalBatches
}

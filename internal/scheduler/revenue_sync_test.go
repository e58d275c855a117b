package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-revenue-sync/internal/config"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
	"github.com/vfg2006/ad-revenue-sync/internal/usecases/syncing"
)

// blockingSyncer segura a execução até release ser fechado
type blockingSyncer struct {
	started chan struct{}
	release chan struct{}
	err     error
	start   string
	end     string
}

func newBlockingSyncer() *blockingSyncer {
	return &blockingSyncer{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (b *blockingSyncer) run(ctx context.Context, mode domain.SyncMode, progress syncing.ProgressFunc) (*domain.SyncResult, error) {
	progress(domain.SyncProgress{RunID: "run1", Mode: mode, Stage: syncing.StageDownload, Percent: 5, Status: domain.SyncStatusRunning})
	b.started <- struct{}{}

	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if b.err != nil {
		return nil, b.err
	}

	progress(domain.SyncProgress{RunID: "run1", Mode: mode, Stage: syncing.StageComplete, Percent: 100, Status: domain.SyncStatusDone})
	return &domain.SyncResult{RunID: "run1", Mode: mode, RecordCount: 3}, nil
}

func (b *blockingSyncer) AppendSync(ctx context.Context, progress syncing.ProgressFunc) (*domain.SyncResult, error) {
	return b.run(ctx, domain.SyncModeAppend, progress)
}

func (b *blockingSyncer) ReplaceRangeSync(ctx context.Context, startDate, endDate string, progress syncing.ProgressFunc) (*domain.SyncResult, error) {
	b.start, b.end = startDate, endDate
	return b.run(ctx, domain.SyncModeReplace, progress)
}

func newTestConfig() *config.Config {
	return &config.Config{
		RevenueSync: config.RevenueSync{CronSchedule: "0 6 * * *", BatchSize: 1000},
	}
}

func waitStarted(t *testing.T, syncer *blockingSyncer) {
	t.Helper()
	select {
	case <-syncer.started:
	case <-time.After(2 * time.Second):
		t.Fatal("a sincronização não começou")
	}
}

func TestRevenueSyncService_TriggerAppend(t *testing.T) {
	syncer := newBlockingSyncer()
	service := NewRevenueSyncService(syncer, nil, newTestConfig())

	require.NoError(t, service.TriggerAppend(context.Background()))
	waitStarted(t, syncer)

	status := service.GetStatus()
	assert.Equal(t, true, status["running"])
	progress, ok := status["progress"].(*domain.SyncProgress)
	require.True(t, ok)
	assert.Equal(t, 5, progress.Percent)

	// segunda solicitação é recusada enquanto a primeira roda
	assert.ErrorIs(t, service.TriggerAppend(context.Background()), syncing.ErrSyncInProgress)
	assert.ErrorIs(t, service.TriggerReplace(context.Background(), "2026-02-01", "2026-02-02"), syncing.ErrSyncInProgress)

	close(syncer.release)
	service.Wait()

	status = service.GetStatus()
	assert.Equal(t, false, status["running"])
	assert.Equal(t, "", status["last_error"])

	result, ok := status["last_result"].(*domain.SyncResult)
	require.True(t, ok)
	assert.Equal(t, 3, result.RecordCount)
	assert.Equal(t, 100, status["progress"].(*domain.SyncProgress).Percent)
}

func TestRevenueSyncService_ContextoDaRequisicaoNaoCancela(t *testing.T) {
	syncer := newBlockingSyncer()
	service := NewRevenueSyncService(syncer, nil, newTestConfig())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, service.TriggerAppend(ctx))
	waitStarted(t, syncer)
	cancel()

	close(syncer.release)
	service.Wait()

	assert.Equal(t, "", service.GetStatus()["last_error"])
}

func TestRevenueSyncService_DesligamentoCancela(t *testing.T) {
	syncer := newBlockingSyncer()
	service := NewRevenueSyncService(syncer, nil, newTestConfig())

	appCtx, shutdown := context.WithCancel(context.Background())
	require.NoError(t, service.Start(appCtx))

	require.NoError(t, service.TriggerAppend(context.Background()))
	waitStarted(t, syncer)
	shutdown()
	service.Wait()

	assert.Equal(t, context.Canceled.Error(), service.GetStatus()["last_error"])
}

func TestRevenueSyncService_TriggerReplace(t *testing.T) {
	syncer := newBlockingSyncer()
	service := NewRevenueSyncService(syncer, nil, newTestConfig())

	err := service.TriggerReplace(context.Background(), "2026-02-05", "2026-02-01")
	assert.ErrorIs(t, err, syncing.ErrInvalidDateRange)
	assert.Equal(t, false, service.GetStatus()["running"])

	require.NoError(t, service.TriggerReplace(context.Background(), "2026-02-01", "2026-02-05"))
	waitStarted(t, syncer)
	close(syncer.release)
	service.Wait()

	assert.Equal(t, "2026-02-01", syncer.start)
	assert.Equal(t, "2026-02-05", syncer.end)
}

func TestRevenueSyncService_RunAppendComErro(t *testing.T) {
	syncer := newBlockingSyncer()
	syncer.err = errors.New("erro ao baixar a planilha")
	close(syncer.release)

	lock := &syncing.RunLock{}
	service := NewRevenueSyncService(syncer, lock, newTestConfig())

	result, err := service.RunAppend(context.Background())

	assert.Nil(t, result)
	assert.EqualError(t, err, "erro ao baixar a planilha")
	assert.False(t, lock.Busy())
	assert.Equal(t, "erro ao baixar a planilha", service.GetStatus()["last_error"])
}

func TestRevenueSyncService_RunReplaceOcupado(t *testing.T) {
	lock := &syncing.RunLock{}
	require.True(t, lock.TryAcquire())

	service := NewRevenueSyncService(newBlockingSyncer(), lock, newTestConfig())

	_, err := service.RunReplace(context.Background(), "2026-02-01", "2026-02-02")

	assert.ErrorIs(t, err, syncing.ErrSyncInProgress)
}

func TestRevenueSyncService_StartConcorrenteComDisparo(t *testing.T) {
	syncer := newBlockingSyncer()
	service := NewRevenueSyncService(syncer, nil, newTestConfig())

	appCtx, shutdown := context.WithCancel(context.Background())
	defer shutdown()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, service.Start(appCtx))
	}()
	go func() {
		defer wg.Done()
		assert.NoError(t, service.TriggerAppend(context.Background()))
	}()
	wg.Wait()

	waitStarted(t, syncer)
	close(syncer.release)
	service.Wait()

	assert.Equal(t, "", service.GetStatus()["last_error"])
	assert.Same(t, appCtx, service.shutdownContext())
}

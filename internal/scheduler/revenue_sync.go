package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-revenue-sync/internal/config"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
	"github.com/vfg2006/ad-revenue-sync/internal/usecases/syncing"
)

// RevenueSyncConfig representa a configuração do agendador da planilha de receita
type RevenueSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// RevenueSyncService agenda a sincronização incremental e atende os disparos manuais.
// Apenas uma execução por vez, controlada pelo RunLock.
type RevenueSyncService struct {
	scheduler *gocron.Scheduler
	config    RevenueSyncConfig
	syncer    syncing.RevenueSyncer
	lock      *syncing.RunLock
	wg        sync.WaitGroup

	// statusMutex também protege baseCtx, trocado pelo Start
	statusMutex         sync.RWMutex
	baseCtx             context.Context
	progress            *domain.SyncProgress
	lastResult          *domain.SyncResult
	lastError           string
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewRevenueSyncService cria uma nova instância do serviço de sincronização da planilha de receita
func NewRevenueSyncService(syncer syncing.RevenueSyncer, lock *syncing.RunLock, appConfig *config.Config) *RevenueSyncService {
	syncConfig := RevenueSyncConfig{
		CronSchedule: appConfig.RevenueSync.CronSchedule,
		SyncEnabled:  appConfig.RevenueSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
		"batch_size":    appConfig.RevenueSync.BatchSize,
	}).Info("Configuração do agendador da planilha de receita carregada")

	if lock == nil {
		lock = &syncing.RunLock{}
	}

	return &RevenueSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		syncer:    syncer,
		lock:      lock,
		baseCtx:   context.Background(),
	}
}

// Start inicia o agendador
func (s *RevenueSyncService) Start(ctx context.Context) error {
	s.statusMutex.Lock()
	s.baseCtx = ctx
	s.statusMutex.Unlock()

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada da planilha de receita desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador da planilha de receita")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.TriggerAppend(ctx); err != nil {
			logrus.WithError(err).Info("Sincronização agendada ignorada")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização da planilha de receita: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador da planilha de receita")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerAppend dispara a sincronização incremental em segundo plano
func (s *RevenueSyncService) TriggerAppend(ctx context.Context) error {
	if !s.lock.TryAcquire() {
		logrus.Info("Sincronização da planilha de receita já em andamento, ignorando solicitação")
		return syncing.ErrSyncInProgress
	}

	s.background(ctx, func(runCtx context.Context) (*domain.SyncResult, error) {
		return s.syncer.AppendSync(runCtx, s.recordProgress)
	})
	return nil
}

// TriggerReplace valida o intervalo antes de disparar a substituição em segundo plano
func (s *RevenueSyncService) TriggerReplace(ctx context.Context, startDate, endDate string) error {
	if _, _, err := syncing.ValidateDateRange(startDate, endDate); err != nil {
		return err
	}

	if !s.lock.TryAcquire() {
		logrus.Info("Sincronização da planilha de receita já em andamento, ignorando solicitação")
		return syncing.ErrSyncInProgress
	}

	s.background(ctx, func(runCtx context.Context) (*domain.SyncResult, error) {
		return s.syncer.ReplaceRangeSync(runCtx, startDate, endDate, s.recordProgress)
	})
	return nil
}

// RunAppend executa a sincronização incremental e espera o resultado
func (s *RevenueSyncService) RunAppend(ctx context.Context) (*domain.SyncResult, error) {
	if !s.lock.TryAcquire() {
		return nil, syncing.ErrSyncInProgress
	}
	defer s.lock.Release()

	return s.track(func() (*domain.SyncResult, error) {
		return s.syncer.AppendSync(ctx, s.recordProgress)
	})
}

// RunReplace executa a substituição do intervalo e espera o resultado
func (s *RevenueSyncService) RunReplace(ctx context.Context, startDate, endDate string) (*domain.SyncResult, error) {
	if !s.lock.TryAcquire() {
		return nil, syncing.ErrSyncInProgress
	}
	defer s.lock.Release()

	return s.track(func() (*domain.SyncResult, error) {
		return s.syncer.ReplaceRangeSync(ctx, startDate, endDate, s.recordProgress)
	})
}

// Wait bloqueia até as execuções em segundo plano terminarem
func (s *RevenueSyncService) Wait() {
	s.wg.Wait()
}

// background executa fn com o lock já adquirido. O contexto da requisição não cancela a execução;
// apenas o contexto do Start (desligamento do processo) cancela.
func (s *RevenueSyncService) background(ctx context.Context, fn func(context.Context) (*domain.SyncResult, error)) {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(s.shutdownContext(), cancel)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.lock.Release()
		defer cancel()
		defer stop()

		_, _ = s.track(func() (*domain.SyncResult, error) {
			return fn(runCtx)
		})
	}()
}

func (s *RevenueSyncService) shutdownContext() context.Context {
	s.statusMutex.RLock()
	defer s.statusMutex.RUnlock()

	return s.baseCtx
}

func (s *RevenueSyncService) track(fn func() (*domain.SyncResult, error)) (*domain.SyncResult, error) {
	s.statusMutex.Lock()
	s.lastSyncStartedAt = time.Now()
	s.progress = nil
	s.statusMutex.Unlock()

	result, err := fn()

	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.lastSyncCompletedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
		return nil, err
	}

	s.lastError = ""
	s.lastResult = result
	return result, nil
}

func (s *RevenueSyncService) recordProgress(progress domain.SyncProgress) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.progress = &progress
}

// GetStatus retorna o status atual do agendador e da última execução
func (s *RevenueSyncService) GetStatus() map[string]any {
	s.statusMutex.RLock()
	defer s.statusMutex.RUnlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"running":                s.lock.Busy(),
		"progress":               s.progress,
		"last_result":            s.lastResult,
		"last_error":             s.lastError,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}

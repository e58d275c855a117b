package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/repository"
	"github.com/vfg2006/ad-revenue-sync/internal/config"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
	"github.com/vfg2006/ad-revenue-sync/pkg/apiErrors"
	"github.com/vfg2006/ad-revenue-sync/pkg/log"
	"github.com/vfg2006/ad-revenue-sync/pkg/metrics"
	"github.com/vfg2006/ad-revenue-sync/pkg/utils"
)

type Service struct {
	downloader  SheetDownloader
	clientRepo  repository.ClientRepository
	revenueRepo repository.DailyRevenueRepository
	holidayRepo repository.HolidayRepository
	reconciler  *ClientReconciler
	writer      *BatchWriter
}

func NewService(
	downloader SheetDownloader,
	clientRepo repository.ClientRepository,
	revenueRepo repository.DailyRevenueRepository,
	holidayRepo repository.HolidayRepository,
	cfg config.RevenueSync,
) RevenueSyncer {
	return &Service{
		downloader:  downloader,
		clientRepo:  clientRepo,
		revenueRepo: revenueRepo,
		holidayRepo: holidayRepo,
		reconciler:  NewClientReconciler(clientRepo, cfg.LookupChunkSize),
		writer:      NewBatchWriter(revenueRepo, cfg.BatchSize),
	}
}

// syncRun carrega o estado de uma única execução
type syncRun struct {
	ctx      context.Context
	logger   *logrus.Entry
	progress *progressReporter
	result   *domain.SyncResult
}

func (s *Service) AppendSync(ctx context.Context, progress ProgressFunc) (*domain.SyncResult, error) {
	run := s.newRun(ctx, domain.SyncModeAppend, progress)
	return s.finish(run, s.appendSync(run))
}

func (s *Service) ReplaceRangeSync(ctx context.Context, startDate, endDate string, progress ProgressFunc) (*domain.SyncResult, error) {
	run := s.newRun(ctx, domain.SyncModeReplace, progress)
	return s.finish(run, s.replaceRangeSync(run, startDate, endDate))
}

func (s *Service) appendSync(run *syncRun) error {
	records, err := s.fetchRecords(run)
	if err != nil {
		return err
	}

	run.progress.report(StageLatest, 20, "")
	latest, err := s.revenueRepo.LatestDate(run.ctx)
	if err != nil {
		return dbError(StageLatest, err)
	}
	run.logger.WithField("latest_date", latest).Info("Última data gravada na tabela de receita")

	mctx, err := s.loadMappingContext(run, SinceDate(latest), 30, 32)
	if err != nil {
		return err
	}

	run.progress.report(StageMapping, 40, "")
	payload := s.buildPayload(run, records, mctx)

	revenues, err := s.dropUnchanged(run, latest, payload.Revenues)
	if err != nil {
		return err
	}

	if len(revenues) == 0 {
		run.result.UpToDate = true
		run.progress.done("Nenhuma linha nova para sincronizar")
		return nil
	}

	return s.write(run, revenues, payload.Clients, WriteUpsert)
}

func (s *Service) replaceRangeSync(run *syncRun, startDate, endDate string) error {
	run.progress.report(StageValidate, 0, "")
	start, end, err := ValidateDateRange(startDate, endDate)
	if err != nil {
		return newStageError(StageValidate, apiErrors.ErrInvalidDateRange, err)
	}
	run.logger = run.logger.WithFields(logrus.Fields{"start_date": start, "end_date": end})

	records, err := s.fetchRecords(run)
	if err != nil {
		return err
	}

	if err := checkCancelled(run.ctx); err != nil {
		return err
	}

	run.progress.report(StageDelete, 25, fmt.Sprintf("%s a %s", start, end))
	deleted, err := s.revenueRepo.DeleteRange(run.ctx, start, end)
	if err != nil {
		run.logger.WithError(err).Warn("Falha ao remover o intervalo, seguindo com o envio")
	} else {
		run.logger.WithField("deleted", deleted).Info("Intervalo removido da tabela de receita")
	}

	mctx, err := s.loadMappingContext(run, BetweenDates(start, end), 35, 37)
	if err != nil {
		return err
	}

	run.progress.report(StageMapping, 45, "")
	payload := s.buildPayload(run, records, mctx)

	if len(payload.Revenues) == 0 {
		run.result.UpToDate = true
		run.progress.done("Nenhuma linha para enviar neste intervalo")
		return nil
	}

	return s.write(run, payload.Revenues, payload.Clients, WriteInsert)
}

// fetchRecords baixa (5%) e lê (15%) a planilha
func (s *Service) fetchRecords(run *syncRun) ([]domain.RawRecord, error) {
	run.progress.report(StageDownload, 5, "")
	export, err := s.downloader.Download(run.ctx)
	if err != nil {
		return nil, newStageError(StageDownload, apiErrors.ErrExternalService, fmt.Errorf("%w: %w", ErrDownload, err))
	}

	run.progress.report(StageParse, 15, "")
	parsed, err := parseExport(export)
	if err != nil {
		return nil, newStageError(StageParse, apiErrors.ErrExternalService, fmt.Errorf("%w: %w", ErrParse, err))
	}

	for _, skipped := range parsed.Skipped {
		run.logger.WithFields(logrus.Fields{
			"line":     skipped.Line,
			"fields":   skipped.Fields,
			"expected": skipped.Expected,
		}).Debug("Linha com quantidade de colunas inválida")
		metrics.IncRowsSkipped("column_mismatch")
	}
	run.result.SkippedRows += len(parsed.Skipped)

	run.logger.WithFields(logrus.Fields{
		"records": len(parsed.Records),
		"skipped": len(parsed.Skipped),
	}).Info("Planilha lida")

	return parsed.Records, nil
}

func parseExport(export *domain.SheetExport) (*ParseResult, error) {
	if export == nil || len(export.Body) == 0 {
		return nil, errors.New("exportação vazia")
	}

	if isWorkbook(export.Body, export.ContentType) {
		return ParseWorkbook(export.Body)
	}

	parsed := ParseCSV(string(export.Body))
	if parsed.Header == nil {
		return nil, errors.New("planilha sem cabeçalho")
	}
	return parsed, nil
}

// loadMappingContext carrega clientes e feriados uma única vez por execução
func (s *Service) loadMappingContext(run *syncRun, include DateFilter, clientsPercent, holidaysPercent int) (MappingContext, error) {
	run.progress.report(StageLookup, clientsPercent, "clientes")
	clients, err := s.clientRepo.ListClients(run.ctx)
	if err != nil {
		return MappingContext{}, dbError(StageLookup, err)
	}

	run.progress.report(StageLookup, holidaysPercent, "feriados")
	holidays, err := s.holidayRepo.ListHolidays(run.ctx)
	if err != nil {
		return MappingContext{}, dbError(StageLookup, err)
	}

	return NewMappingContext(include, clients, holidays), nil
}

func (s *Service) buildPayload(run *syncRun, records []domain.RawRecord, mctx MappingContext) *Payload {
	payload := BuildPayload(records, mctx)

	for reason, count := range payload.SkipCounts() {
		metrics.AddRowsSkipped(string(reason), count)
		if reason != SkipOutOfRange {
			run.result.SkippedRows += count
		}
	}

	run.logger.WithFields(logrus.Fields{
		"revenues": len(payload.Revenues),
		"clients":  len(payload.Clients),
	}).Info("Linhas mapeadas")

	return payload
}

// dropUnchanged remove as linhas idênticas ao que já está gravado a partir de latest
func (s *Service) dropUnchanged(run *syncRun, latest string, revenues []*domain.DailyRevenue) ([]*domain.DailyRevenue, error) {
	if latest == "" || len(revenues) == 0 {
		return revenues, nil
	}

	stored, err := s.revenueRepo.ListFrom(run.ctx, latest)
	if err != nil {
		return nil, dbError(StageMapping, err)
	}

	storedByKey := make(map[domain.RevenueKey]*domain.DailyRevenue, len(stored))
	for _, row := range stored {
		storedByKey[row.Key()] = row
	}

	changed := make([]*domain.DailyRevenue, 0, len(revenues))
	for _, revenue := range revenues {
		if revenue.SameAs(storedByKey[revenue.Key()]) {
			continue
		}
		changed = append(changed, revenue)
	}

	if unchanged := len(revenues) - len(changed); unchanged > 0 {
		run.logger.WithField("unchanged", unchanged).Debug("Linhas sem alteração descartadas")
	}

	return changed, nil
}

// write reconcilia os clientes (50%) e grava os lotes (55% a 95%)
func (s *Service) write(run *syncRun, revenues []*domain.DailyRevenue, candidates []*domain.ClientCandidate, mode WriteMode) error {
	if err := checkCancelled(run.ctx); err != nil {
		return err
	}

	run.progress.report(StageClients, 50, "")
	reconciled, err := s.reconciler.Reconcile(run.ctx, candidates)
	if err != nil {
		return dbError(StageClients, err)
	}
	run.result.NewClients = reconciled.Inserted
	run.result.RenamedClients = reconciled.Renamed

	if err := checkCancelled(run.ctx); err != nil {
		return err
	}

	run.progress.report(StageUpload, uploadStartPercent, fmt.Sprintf("0 / %d registros", len(revenues)))
	written, err := s.writer.WriteBatches(run.ctx, revenues, mode, func(percent int, detail string) {
		run.progress.report(StageUpload, percent, detail)
	})
	run.result.RecordCount = written
	metrics.AddRowsWritten(string(run.result.Mode), written)
	if err != nil {
		return err
	}

	run.progress.done(fmt.Sprintf("%d registros sincronizados", written))
	return nil
}

func (s *Service) newRun(ctx context.Context, mode domain.SyncMode, progress ProgressFunc) *syncRun {
	runID, err := utils.GenerateRunID()
	if err != nil {
		runID = fmt.Sprintf("%d", time.Now().UnixNano())
	}

	ctx = log.WithRunID(ctx, runID)
	logger := log.ForContext(ctx).WithField("mode", mode)
	logger.Info("Iniciando sincronização da planilha de receita")

	return &syncRun{
		ctx:      ctx,
		logger:   logger,
		progress: newProgressReporter(progress, runID, mode),
		result: &domain.SyncResult{
			RunID:     runID,
			Mode:      mode,
			StartedAt: time.Now(),
		},
	}
}

// finish garante o estado terminal do progresso e registra as métricas da execução
func (s *Service) finish(run *syncRun, err error) (*domain.SyncResult, error) {
	run.result.FinishedAt = time.Now()
	elapsed := run.result.FinishedAt.Sub(run.result.StartedAt)
	mode := string(run.result.Mode)

	if err != nil {
		var syncErr *SyncError
		stage := ""
		if errors.As(err, &syncErr) {
			stage = syncErr.Stage
		}

		run.progress.fail(stage, err)
		metrics.ObserveRun(mode, "error", elapsed)
		run.logger.WithError(err).WithField("stage", stage).Error("Erro na sincronização da planilha de receita")
		return nil, err
	}

	outcome := "success"
	if run.result.UpToDate {
		outcome = "up_to_date"
	}
	metrics.ObserveRun(mode, outcome, elapsed)

	run.logger.WithFields(logrus.Fields{
		"records":  run.result.RecordCount,
		"skipped":  run.result.SkippedRows,
		"duration": elapsed.String(),
	}).Info("Sincronização da planilha de receita concluída")

	return run.result, nil
}

// ValidateDateRange normaliza as datas do intervalo e exige início <= fim
func ValidateDateRange(startDate, endDate string) (string, string, error) {
	if startDate == "" || endDate == "" {
		return "", "", errors.Wrap(ErrInvalidDateRange, "informe a data inicial e a data final")
	}

	start, err := utils.NormalizeDate(startDate)
	if err != nil {
		return "", "", errors.Wrapf(ErrInvalidDateRange, "data inicial inválida: %s", startDate)
	}

	end, err := utils.NormalizeDate(endDate)
	if err != nil {
		return "", "", errors.Wrapf(ErrInvalidDateRange, "data final inválida: %s", endDate)
	}

	if start > end {
		return "", "", errors.Wrapf(ErrInvalidDateRange, "a data inicial %s é posterior à data final %s", start, end)
	}

	return start, end, nil
}

func checkCancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return newStageError(StageCancelled, "", err)
	}
	return nil
}

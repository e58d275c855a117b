package sheets

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-revenue-sync/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/ad-revenue-sync/internal/config"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
)

var ErrExportURLNotConfigured = errors.New("REVENUE_SYNC_EXPORT_URL não configurada")

type SheetsIntegrator interface {
	Download(ctx context.Context) (*domain.SheetExport, error)
}

type SheetsService struct {
	cfg    config.RevenueSync
	Client sheetsclient.Client
}

func New(cfg config.RevenueSync, client sheetsclient.Client) SheetsIntegrator {
	return &SheetsService{
		cfg:    cfg,
		Client: client,
	}
}

// Download baixa a exportação da planilha de receita (CSV ou xlsx)
func (s *SheetsService) Download(ctx context.Context) (*domain.SheetExport, error) {
	if s.cfg.ExportURL == "" {
		return nil, ErrExportURLNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.RequestTimeoutSeconds)*time.Second)
	defer cancel()

	start := time.Now()
	resp, err := s.Client.GetExport(ctx, sheetsclient.ExportParams{URL: s.cfg.ExportURL})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"bytes":        len(resp.Body),
		"content_type": resp.ContentType,
		"duration":     time.Since(start).String(),
	}).Info("Exportação da planilha baixada")

	return &domain.SheetExport{
		Body:        resp.Body,
		ContentType: resp.ContentType,
	}, nil
}

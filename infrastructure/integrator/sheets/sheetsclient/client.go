package sheetsclient

import (
	"context"
	"net/http"
	"time"
)

type Client interface {
	GetExport(ctx context.Context, params ExportParams) (*ExportResponse, error)
}

type SheetsClient struct {
	httpClient *http.Client
}

// NewClient cria o cliente HTTP da exportação com o timeout informado
func NewClient(timeout time.Duration) Client {
	return &SheetsClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

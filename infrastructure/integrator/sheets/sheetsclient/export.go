package sheetsclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type ExportParams struct {
	URL string
}

type ExportResponse struct {
	Body        []byte
	ContentType string
}

func (c *SheetsClient) GetExport(ctx context.Context, params ExportParams) (*ExportResponse, error) {
	endpoint, err := url.Parse(params.URL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL da exportação: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Accept", "text/csv, application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	return &ExportResponse{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

package handler

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
	"github.com/vfg2006/ad-revenue-sync/internal/usecases/syncing"
	"github.com/vfg2006/ad-revenue-sync/pkg/apiErrors"
	"github.com/vfg2006/ad-revenue-sync/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RevenueSyncTrigger é o que os handlers precisam do agendador da planilha de receita
type RevenueSyncTrigger interface {
	TriggerAppend(ctx context.Context) error
	TriggerReplace(ctx context.Context, startDate, endDate string) error
	GetStatus() map[string]any
}

// ReplaceSyncRequest é o corpo de POST /v1/revenue/sync/replace
type ReplaceSyncRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// TriggerAppendSync dispara a sincronização incremental em segundo plano
func TriggerAppendSync(service RevenueSyncTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - TriggerAppendSync")

		if err := service.TriggerAppend(r.Context()); err != nil {
			writeSyncError(w, err)
			return
		}

		writeAccepted(w, domain.SyncModeAppend)
	})
}

// TriggerReplaceSync valida o intervalo e dispara a substituição em segundo plano
func TriggerReplaceSync(service RevenueSyncTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - TriggerReplaceSync")

		var req ReplaceSyncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if req.StartDate == "" || req.EndDate == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "start_date e end_date são obrigatórios", nil)
			return
		}

		if err := service.TriggerReplace(r.Context(), req.StartDate, req.EndDate); err != nil {
			writeSyncError(w, err)
			return
		}

		writeAccepted(w, domain.SyncModeReplace)
	})
}

// GetRevenueSyncStatus retorna o progresso e o resultado da última execução
func GetRevenueSyncStatus(service RevenueSyncTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(service.GetStatus()); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func writeAccepted(w http.ResponseWriter, mode domain.SyncMode) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)

	response := map[string]any{
		"message": "Sincronização iniciada com sucesso",
		"mode":    mode,
	}
	json.NewEncoder(w).Encode(response)
}

func writeSyncError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, syncing.ErrSyncInProgress):
		apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Já existe uma sincronização em andamento", nil)

	case errors.Is(err, syncing.ErrInvalidDateRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)

	default:
		logrus.WithError(err).Error("Erro ao disparar sincronização")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao disparar sincronização", nil)
	}
}

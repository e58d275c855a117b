// Package log concentra os campos de rastreabilidade usados nos logs (correlation_id e run_id)
package log

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	// CorrelationIDKey é a chave do ID de correlação de uma requisição HTTP no contexto
	CorrelationIDKey contextKey = "correlation_id"

	// RunIDKey é a chave do ID de uma execução de sincronização no contexto
	RunIDKey contextKey = "run_id"
)

// IsDevelopment retorna verdadeiro se estamos em ambiente de desenvolvimento
func IsDevelopment() bool {
	env := os.Getenv("APP_ENV")
	return env == "" || env == "development" || env == "dev"
}

// SetupTestLogger configura um logger simplificado para testes
func SetupTestLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.DebugLevel)
}

// WithCorrelationID adiciona um ID de correlação ao contexto
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	correlationID := uuid.New().String()
	return context.WithValue(ctx, CorrelationIDKey, correlationID), correlationID
}

// GetCorrelationID obtém o ID de correlação do contexto
func GetCorrelationID(ctx context.Context) string {
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// WithRunID marca o contexto com o ID da execução de sincronização
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID obtém o ID da execução do contexto
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// ForContext cria uma entrada de log com os IDs presentes no contexto
func ForContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logrus.StandardLogger())
	if ctx == nil {
		return entry
	}

	fields := logrus.Fields{}
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		fields[string(CorrelationIDKey)] = correlationID
	}
	if runID := GetRunID(ctx); runID != "" {
		fields[string(RunIDKey)] = runID
	}

	if len(fields) == 0 {
		return entry
	}
	return entry.WithFields(fields)
}

package syncing

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/vfg2006/ad-revenue-sync/pkg/apiErrors"
)

// Erros específicos da sincronização da planilha
var (
	// Erros de validação, retornados antes de qualquer chamada de rede
	ErrInvalidDateRange = errors.New("intervalo de datas inválido")

	// Execução concorrente recusada pelo RunLock
	ErrSyncInProgress = errors.New("sincronização já em andamento")

	// Erros de serviços externos
	ErrDownload = errors.New("erro ao baixar a planilha")
	ErrParse    = errors.New("erro ao ler a planilha")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro de operação no banco de dados")
)

// Etapas usadas em SyncError e nos eventos de progresso
const (
	StageValidate  = "validação"
	StageDownload  = "download"
	StageParse     = "leitura"
	StageLatest    = "última data"
	StageDelete    = "remoção do intervalo"
	StageLookup    = "clientes e feriados"
	StageMapping   = "mapeamento"
	StageClients   = "clientes"
	StageUpload    = "envio"
	StageComplete  = "concluído"
	StageCancelled = "cancelado"
)

// SyncError é um erro fatal para a execução, com a etapa e o lote que falharam
type SyncError struct {
	Err   error  // Erro base
	Stage string // Etapa em que ocorreu
	Batch int    // Índice do lote (base 1) ou -1
	Code  string // Código de erro para API
}

// Error implementa a interface error
func (e *SyncError) Error() string {
	if e.Batch >= 0 {
		return fmt.Sprintf("%s (lote %d): %s", e.Stage, e.Batch, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Err.Error())
}

// Unwrap retorna o erro subjacente
func (e *SyncError) Unwrap() error {
	return e.Err
}

func newStageError(stage string, code string, err error) *SyncError {
	return &SyncError{Err: err, Stage: stage, Batch: -1, Code: code}
}

func newBatchError(batch int, err error) *SyncError {
	return &SyncError{
		Err:   fmt.Errorf("%w: %w", ErrDatabaseOperation, err),
		Stage: StageUpload,
		Batch: batch,
		Code:  apiErrors.ErrDatabaseOperation,
	}
}

func dbError(stage string, err error) *SyncError {
	return newStageError(stage, apiErrors.ErrDatabaseOperation, fmt.Errorf("%w: %w", ErrDatabaseOperation, err))
}

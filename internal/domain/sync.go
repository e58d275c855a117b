package domain

import "time"

// SyncMode define o modo de sincronização da planilha
type SyncMode string

const (
	SyncModeAppend  SyncMode = "append"
	SyncModeReplace SyncMode = "replace"
)

// SyncStatus é o estado de uma execução de sincronização
type SyncStatus string

const (
	SyncStatusRunning SyncStatus = "running"
	SyncStatusDone    SyncStatus = "done"
	SyncStatusError   SyncStatus = "error"
)

// SyncProgress é emitido repetidamente durante uma execução
type SyncProgress struct {
	RunID     string     `json:"run_id"`
	Mode      SyncMode   `json:"mode"`
	Stage     string     `json:"stage"`
	Percent   int        `json:"percent"`
	Detail    string     `json:"detail,omitempty"`
	Status    SyncStatus `json:"status"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SyncResult resume uma execução concluída
type SyncResult struct {
	RunID          string    `json:"run_id"`
	Mode           SyncMode  `json:"mode"`
	RecordCount    int       `json:"record_count"`
	NewClients     int       `json:"new_clients"`
	RenamedClients int       `json:"renamed_clients"`
	SkippedRows    int       `json:"skipped_rows"`
	UpToDate       bool      `json:"up_to_date"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

// RawRecord é uma linha de dados da planilha, coluna -> valor, sem tipagem
type RawRecord struct {
	Line   int
	Fields map[string]string
}

// Get retorna o valor da primeira coluna presente entre os nomes informados
func (r RawRecord) Get(names ...string) (string, bool) {
	for _, name := range names {
		if value, ok := r.Fields[name]; ok {
			return value, true
		}
	}
	return "", false
}

// SheetExport é o conteúdo baixado da exportação da planilha
type SheetExport struct {
	Body        []byte
	ContentType string
}

package domain

// Client representa um anunciante na tabela de dimensão clients.
// ClientID é sempre texto: zeros à esquerda fazem parte do identificador.
type Client struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	ManagerID  *int64 `json:"manager_id,omitempty"`
}

// ClientChange indica por que o cliente foi emitido pelo mapeamento
type ClientChange string

const (
	ClientChangeNew     ClientChange = "new"
	ClientChangeRenamed ClientChange = "renamed"
)

// ClientCandidate é um cliente novo ou renomeado encontrado na planilha
type ClientCandidate struct {
	Client
	Change ClientChange `json:"change"`
}

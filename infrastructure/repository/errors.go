package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrConflict indica violação da chave única (date, client_id) ou da chave primária de clients
var ErrConflict = errors.New("registro já existe")

const uniqueViolation = pq.ErrorCode("23505")

// describePQError acrescenta o código do Postgres à mensagem e traduz conflitos em ErrConflict
func describePQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	if pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s (código: %s)", ErrConflict, pqErr.Message, pqErr.Code)
	}

	return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
}

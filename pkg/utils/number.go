package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount é retornado para valores monetários não numéricos, negativos, fracionários
// ou acima do que cabe em int64
var ErrInvalidAmount = errors.New("valor inválido")

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// ParseAmount converte "1,234,000" em 1234000. Aceita "1234.00" mas rejeita frações reais
// e notação científica ("1e3").
func ParseAmount(value string) (int64, error) {
	cleaned := stripThousands(value)
	if cleaned == "" {
		return 0, fmt.Errorf("%w: vazio", ErrInvalidAmount)
	}

	if strings.ContainsAny(cleaned, "eE") {
		return 0, fmt.Errorf("%w: notação científica %q", ErrInvalidAmount, value)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}

	if amount.IsNegative() || !amount.IsInteger() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}

	if amount.GreaterThan(maxAmount) {
		return 0, fmt.Errorf("%w: fora do intervalo %q", ErrInvalidAmount, value)
	}

	return amount.IntPart(), nil
}

// ParseCount converte métricas de tráfego opcionais. ok=false quando ausente ou não numérica.
func ParseCount(value string) (int64, bool) {
	cleaned := stripThousands(value)
	if cleaned == "" {
		return 0, false
	}

	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}

func stripThousands(value string) string {
	return strings.ReplaceAll(strings.TrimSpace(value), ",", "")
}

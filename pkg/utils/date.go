package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDate é retornado quando o texto não representa uma data reconhecida
var ErrInvalidDate = errors.New("data inválida")

// NormalizeDate converte YYYY-MM-DD, YYYY/MM/DD, M/D/YYYY e "YYYY. MM. DD" para YYYY-MM-DD.
// Nunca entra em pânico: entradas malformadas retornam ErrInvalidDate.
func NormalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)

	switch {
	case strings.Contains(value, "/"):
		return normalizeSlashDate(value)
	case strings.Contains(value, "-"):
		return normalizeOrderedDate(strings.Split(value, "-"), value)
	case strings.Contains(value, "."):
		parts := strings.Split(value, ".")
		// "2025. 3. 7." também é aceito: o ponto final não é uma parte
		if len(parts) == 4 && strings.TrimSpace(parts[3]) == "" {
			parts = parts[:3]
		}
		return normalizeOrderedDate(parts, value)
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// normalizeOrderedDate trata partes já na ordem ano, mês, dia
func normalizeOrderedDate(parts []string, raw string) (string, error) {
	numbers, ok := parseDateParts(parts)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}

	return formatDate(numbers[0], numbers[1], numbers[2], raw)
}

// normalizeSlashDate decide entre M/D/YYYY e YYYY/M/D pela posição do ano
func normalizeSlashDate(raw string) (string, error) {
	numbers, ok := parseDateParts(strings.Split(raw, "/"))
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}

	yearIndex := -1
	for i, n := range numbers {
		if n >= 1000 {
			if yearIndex != -1 {
				return "", fmt.Errorf("%w: mais de um ano em %q", ErrInvalidDate, raw)
			}
			yearIndex = i
		}
	}

	switch yearIndex {
	case 0:
		return formatDate(numbers[0], numbers[1], numbers[2], raw)
	case 2:
		return formatDate(numbers[2], numbers[0], numbers[1], raw)
	}

	return "", fmt.Errorf("%w: ano não encontrado em %q", ErrInvalidDate, raw)
}

func parseDateParts(parts []string) ([3]int, bool) {
	var numbers [3]int
	if len(parts) != 3 {
		return numbers, false
	}

	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return numbers, false
		}
		numbers[i] = n
	}

	return numbers, true
}

func formatDate(year, month, day int, raw string) (string, error) {
	if year < 1000 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", fmt.Errorf("%w: fora do intervalo %q", ErrInvalidDate, raw)
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

package syncing

import (
	"strings"

	"github.com/vfg2006/ad-revenue-sync/internal/domain"
)

const utf8BOM = "\ufeff"

// ParseResult é a planilha lida: cabeçalho, linhas de dados e linhas descartadas
type ParseResult struct {
	Header  []string
	Records []domain.RawRecord
	Skipped []SkippedLine
}

// SkippedLine registra uma linha cujo número de colunas não bate com o cabeçalho
type SkippedLine struct {
	Line     int
	Fields   int
	Expected int
}

// ParseCSV separa o texto em registros coluna -> valor. Linhas em branco são ignoradas e
// linhas com quantidade de colunas diferente do cabeçalho são descartadas sem interromper a leitura.
func ParseCSV(text string) *ParseResult {
	result := &ParseResult{
		Records: make([]domain.RawRecord, 0),
	}

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitCSVLine(line)

		if result.Header == nil {
			fields[0] = strings.TrimPrefix(fields[0], utf8BOM)
			result.Header = fields
			continue
		}

		lineNumber := i + 1
		if len(fields) != len(result.Header) {
			result.Skipped = append(result.Skipped, SkippedLine{
				Line:     lineNumber,
				Fields:   len(fields),
				Expected: len(result.Header),
			})
			continue
		}

		result.Records = append(result.Records, newRawRecord(lineNumber, result.Header, fields))
	}

	return result
}

// splitCSVLine divide a linha nas vírgulas fora de aspas duplas. As aspas não fazem parte do valor.
func splitCSVLine(line string) []string {
	fields := make([]string, 0, strings.Count(line, ",")+1)

	var current strings.Builder
	inQuotes := false

	for _, char := range line {
		switch {
		case char == '"':
			inQuotes = !inQuotes
		case char == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(char)
		}
	}

	return append(fields, strings.TrimSpace(current.String()))
}

func newRawRecord(line int, header, values []string) domain.RawRecord {
	record := domain.RawRecord{
		Line:   line,
		Fields: make(map[string]string, len(header)),
	}

	for i, column := range header {
		record.Fields[column] = values[i]
	}

	return record
}

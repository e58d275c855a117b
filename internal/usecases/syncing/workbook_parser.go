package syncing

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var zipMagic = []byte("PK\x03\x04")

// isWorkbook identifica uma exportação .xlsx pelo content type ou pela assinatura zip
func isWorkbook(body []byte, contentType string) bool {
	if strings.Contains(contentType, "spreadsheetml") {
		return true
	}
	return bytes.HasPrefix(body, zipMagic)
}

// ParseWorkbook lê a primeira aba de uma exportação .xlsx e produz o mesmo resultado de ParseCSV.
// O excelize omite células vazias no fim da linha, então linhas curtas são completadas em vez de descartadas.
func ParseWorkbook(body []byte) (*ParseResult, error) {
	file, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir a planilha xlsx")
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return &ParseResult{}, nil
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler a aba %s", sheets[0])
	}

	result := &ParseResult{}
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}

		for j := range row {
			row[j] = strings.TrimSpace(row[j])
		}

		if result.Header == nil {
			result.Header = row
			continue
		}

		lineNumber := i + 1
		if len(row) > len(result.Header) {
			result.Skipped = append(result.Skipped, SkippedLine{
				Line:     lineNumber,
				Fields:   len(row),
				Expected: len(result.Header),
			})
			continue
		}

		padded := make([]string, len(result.Header))
		copy(padded, row)
		result.Records = append(result.Records, newRawRecord(lineNumber, result.Header, padded))
	}

	return result, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

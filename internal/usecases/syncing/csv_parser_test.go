package syncing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		expectedRecords int
		expectedSkipped []SkippedLine
	}{
		{
			name:            "Arquivo válido",
			text:            "date,client_id,client_name,amount\n2026-02-01,001,Loja A,100\n2026-02-02,002,Loja B,200\n",
			expectedRecords: 2,
		},
		{
			name:            "Linha malformada não interrompe a leitura",
			text:            "date,client_id,client_name,amount\n2026-02-01,001,Loja A,100\n2026-02-02,002,200\n2026-02-03,003,Loja C,300\n2026-02-04,004,Loja D,400\n",
			expectedRecords: 3,
			expectedSkipped: []SkippedLine{{Line: 3, Fields: 3, Expected: 4}},
		},
		{
			name:            "Linhas em branco e CRLF",
			text:            "date,client_id,client_name,amount\r\n\r\n2026-02-01,001,Loja A,100\r\n   \r\n",
			expectedRecords: 1,
		},
		{
			name:            "Somente cabeçalho",
			text:            "date,client_id,client_name,amount\n",
			expectedRecords: 0,
		},
		{
			name:            "Texto vazio",
			text:            "",
			expectedRecords: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseCSV(tt.text)

			assert.Len(t, result.Records, tt.expectedRecords)
			assert.Equal(t, tt.expectedSkipped, result.Skipped)
		})
	}
}

func TestParseCSV_Valores(t *testing.T) {
	text := "\ufeffdate,client_id,client_name,amount\n" +
		"2026-02-01, 007 ,\"Loja, Centro\",\"1,200\"\n"

	result := ParseCSV(text)

	require.Len(t, result.Records, 1)
	assert.Equal(t, []string{"date", "client_id", "client_name", "amount"}, result.Header)

	record := result.Records[0]
	assert.Equal(t, 2, record.Line)
	assert.Equal(t, "007", record.Fields["client_id"])
	assert.Equal(t, "Loja, Centro", record.Fields["client_name"])
	assert.Equal(t, "1,200", record.Fields["amount"])
}

func TestSplitCSVLine(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, splitCSVLine("a, b,"))
	assert.Equal(t, []string{"a,b", "c"}, splitCSVLine(`"a,b",c`))
	assert.Equal(t, []string{""}, splitCSVLine(""))
}

package syncing

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
	"github.com/vfg2006/ad-revenue-sync/pkg/utils"
	"golang.org/x/text/unicode/norm"
)

// Colunas da exportação. A data aceita vários nomes, inclusive o rótulo localizado.
var dateColumns = []string{"date", "Date", "revenue_date", "날짜"}

const (
	columnClientID   = "client_id"
	columnClientName = "client_name"
	columnAmount     = "amount"
	columnVimp       = "vimp"
	columnClick      = "click"
	columnConversion = "conversion"
)

var (
	dailyTrendSuffix = regexp.MustCompile(`\s*/\s*(일별\s*추이|Daily\s*Trend)\s*$`)
	ordinalPrefix    = regexp.MustCompile(`^\d+\.\s+`)
)

// SkipReason é o motivo pelo qual uma linha não gerou receita
type SkipReason string

const (
	SkipInvalidDate     SkipReason = "invalid_date"
	SkipOutOfRange      SkipReason = "out_of_range"
	SkipMissingClientID SkipReason = "missing_client_id"
	SkipInvalidAmount   SkipReason = "invalid_amount"
	SkipDuplicateKey    SkipReason = "duplicate_key"
)

// RowOutcome é o resultado de uma linha: Revenue preenchido ou Skip com o motivo
type RowOutcome struct {
	Line    int
	Revenue *domain.DailyRevenue
	Skip    SkipReason
	Detail  string
}

func (o RowOutcome) Skipped() bool {
	return o.Skip != ""
}

// DateFilter decide se uma data normalizada entra na janela da execução
type DateFilter func(date string) bool

// SinceDate aceita datas iguais ou posteriores a latest. Sem data gravada, aceita tudo.
func SinceDate(latest string) DateFilter {
	return func(date string) bool {
		return latest == "" || date >= latest
	}
}

// BetweenDates aceita datas no intervalo fechado [start, end]
func BetweenDates(start, end string) DateFilter {
	return func(date string) bool {
		return date >= start && date <= end
	}
}

// MappingContext reúne o que é carregado uma única vez por execução
type MappingContext struct {
	Include      DateFilter
	Managers     map[string]*int64 // client_id -> manager_id gravado
	KnownClients map[string]string // client_id -> client_name gravado
	Holidays     domain.HolidaySet
}

// NewMappingContext monta as tabelas de consulta a partir dos clientes gravados
func NewMappingContext(include DateFilter, clients []*domain.Client, holidays domain.HolidaySet) MappingContext {
	mctx := MappingContext{
		Include:      include,
		Managers:     make(map[string]*int64, len(clients)),
		KnownClients: make(map[string]string, len(clients)),
		Holidays:     holidays,
	}

	for _, client := range clients {
		mctx.Managers[client.ClientID] = client.ManagerID
		mctx.KnownClients[client.ClientID] = client.ClientName
	}

	return mctx
}

// Payload é o que será gravado: receitas, clientes novos ou renomeados e o resultado de cada linha
type Payload struct {
	Revenues []*domain.DailyRevenue
	Clients  []*domain.ClientCandidate
	Outcomes []RowOutcome
}

// SkipCounts agrupa as linhas ignoradas por motivo
func (p *Payload) SkipCounts() map[SkipReason]int {
	counts := make(map[SkipReason]int)
	for _, outcome := range p.Outcomes {
		if outcome.Skipped() {
			counts[outcome.Skip]++
		}
	}
	return counts
}

// BuildPayload converte os registros brutos em entidades tipadas. Nenhum erro de linha é fatal.
//
// As linhas são percorridas de baixo para cima e a última processada vence para a mesma
// (date, client_id); na prática vale a primeira ocorrência no arquivo. O candidato de cada
// cliente, um por client_id, usa o nome da primeira linha aceita no arquivo, que nunca é
// substituída, para o cadastro bater com o snapshot gravado na receita.
func BuildPayload(records []domain.RawRecord, mctx MappingContext) *Payload {
	payload := &Payload{
		Revenues: make([]*domain.DailyRevenue, 0),
		Clients:  make([]*domain.ClientCandidate, 0),
		Outcomes: make([]RowOutcome, 0, len(records)),
	}

	revenueIndex := make(map[domain.RevenueKey]int)
	outcomeIndex := make(map[domain.RevenueKey]int)

	// linha vencedora mais acima no arquivo por cliente; o nome do candidato vem dela
	clientRows := make(map[string]*domain.DailyRevenue)
	clientOrder := make([]string, 0)

	for i := len(records) - 1; i >= 0; i-- {
		outcome := mapRecord(records[i], mctx)
		if outcome.Skipped() {
			logrus.WithFields(logrus.Fields{
				"line":   outcome.Line,
				"reason": outcome.Skip,
				"detail": outcome.Detail,
			}).Debug("Linha da planilha ignorada")
			payload.Outcomes = append(payload.Outcomes, outcome)
			continue
		}

		revenue := outcome.Revenue
		key := revenue.Key()

		if idx, duplicated := revenueIndex[key]; duplicated {
			superseded := payload.Outcomes[outcomeIndex[key]]
			payload.Outcomes[outcomeIndex[key]] = RowOutcome{
				Line:   superseded.Line,
				Skip:   SkipDuplicateKey,
				Detail: "substituída pela linha " + strconv.Itoa(outcome.Line),
			}
			payload.Revenues[idx] = revenue
		} else {
			revenueIndex[key] = len(payload.Revenues)
			payload.Revenues = append(payload.Revenues, revenue)
		}

		outcomeIndex[key] = len(payload.Outcomes)
		payload.Outcomes = append(payload.Outcomes, outcome)

		if _, seen := clientRows[revenue.ClientID]; !seen {
			clientOrder = append(clientOrder, revenue.ClientID)
		}
		clientRows[revenue.ClientID] = revenue
	}

	for _, clientID := range clientOrder {
		if candidate := clientCandidate(clientRows[clientID], mctx); candidate != nil {
			payload.Clients = append(payload.Clients, candidate)
		}
	}

	sort.SliceStable(payload.Revenues, func(i, j int) bool {
		a, b := payload.Revenues[i], payload.Revenues[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.ClientID < b.ClientID
	})

	sort.SliceStable(payload.Outcomes, func(i, j int) bool {
		return payload.Outcomes[i].Line < payload.Outcomes[j].Line
	})

	return payload
}

func mapRecord(record domain.RawRecord, mctx MappingContext) RowOutcome {
	outcome := RowOutcome{Line: record.Line}

	rawDate, _ := record.Get(dateColumns...)
	date, err := utils.NormalizeDate(rawDate)
	if err != nil {
		outcome.Skip = SkipInvalidDate
		outcome.Detail = err.Error()
		return outcome
	}

	if mctx.Include != nil && !mctx.Include(date) {
		outcome.Skip = SkipOutOfRange
		outcome.Detail = date
		return outcome
	}

	clientID, _ := record.Get(columnClientID)
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		outcome.Skip = SkipMissingClientID
		return outcome
	}

	rawAmount, _ := record.Get(columnAmount)
	amount, err := utils.ParseAmount(rawAmount)
	if err != nil {
		outcome.Skip = SkipInvalidAmount
		outcome.Detail = err.Error()
		return outcome
	}

	rawName, _ := record.Get(columnClientName)
	clientName := cleanClientName(rawName)
	if clientName == "" {
		clientName = clientID
	}

	outcome.Revenue = &domain.DailyRevenue{
		Date:       date,
		ClientID:   clientID,
		ClientName: clientName,
		Amount:     amount,
		ManagerID:  mctx.Managers[clientID],
		IsHoliday:  mctx.Holidays.Contains(date),
		Vimp:       optionalCount(record, columnVimp),
		Click:      optionalCount(record, columnClick),
		Conversion: optionalCount(record, columnConversion),
	}

	return outcome
}

// clientCandidate retorna o cliente a inserir (novo) ou a atualizar (nome diferente do gravado)
func clientCandidate(revenue *domain.DailyRevenue, mctx MappingContext) *domain.ClientCandidate {
	knownName, known := mctx.KnownClients[revenue.ClientID]
	if !known {
		return &domain.ClientCandidate{
			Client: domain.Client{ClientID: revenue.ClientID, ClientName: revenue.ClientName},
			Change: domain.ClientChangeNew,
		}
	}

	if knownName != revenue.ClientName {
		return &domain.ClientCandidate{
			Client: domain.Client{ClientID: revenue.ClientID, ClientName: revenue.ClientName, ManagerID: mctx.Managers[revenue.ClientID]},
			Change: domain.ClientChangeRenamed,
		}
	}

	return nil
}

// cleanClientName remove o sufixo "/ 일별 추이" e o prefixo ordinal ("3. ")
func cleanClientName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	name = dailyTrendSuffix.ReplaceAllString(name, "")
	name = ordinalPrefix.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

func optionalCount(record domain.RawRecord, column string) *int64 {
	raw, ok := record.Get(column)
	if !ok {
		return nil
	}

	n, ok := utils.ParseCount(raw)
	if !ok {
		return nil
	}
	return &n
}

package domain

// DailyRevenue é uma linha da tabela fato daily_revenue, única por (Date, ClientID)
type DailyRevenue struct {
	Date       string `json:"date"`
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	Amount     int64  `json:"amount"`
	ManagerID  *int64 `json:"manager_id,omitempty"`
	IsHoliday  bool   `json:"is_holiday"`
	Vimp       *int64 `json:"vimp,omitempty"`
	Click      *int64 `json:"click,omitempty"`
	Conversion *int64 `json:"conversion,omitempty"`
}

// RevenueKey identifica uma linha da tabela fato
type RevenueKey struct {
	Date     string
	ClientID string
}

func (r *DailyRevenue) Key() RevenueKey {
	return RevenueKey{Date: r.Date, ClientID: r.ClientID}
}

// SameAs compara todos os atributos persistidos de duas linhas com a mesma chave
func (r *DailyRevenue) SameAs(other *DailyRevenue) bool {
	if other == nil {
		return false
	}

	return r.Key() == other.Key() &&
		r.ClientName == other.ClientName &&
		r.Amount == other.Amount &&
		r.IsHoliday == other.IsHoliday &&
		equalInt64Ptr(r.ManagerID, other.ManagerID) &&
		equalInt64Ptr(r.Vimp, other.Vimp) &&
		equalInt64Ptr(r.Click, other.Click) &&
		equalInt64Ptr(r.Conversion, other.Conversion)
}

func equalInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

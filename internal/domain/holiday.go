package domain

// HolidaySet contém as datas de feriado no formato YYYY-MM-DD
type HolidaySet map[string]struct{}

func NewHolidaySet(dates ...string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, date := range dates {
		set[date] = struct{}{}
	}
	return set
}

func (h HolidaySet) Contains(date string) bool {
	_, ok := h[date]
	return ok
}

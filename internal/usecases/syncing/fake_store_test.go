package syncing

import (
	"context"
	"sort"
	"sync"

	"github.com/vfg2006/ad-revenue-sync/infrastructure/repository"
	"github.com/vfg2006/ad-revenue-sync/internal/domain"
)

// fakeStore implementa os repositórios de clientes, receita e feriados em memória
type fakeStore struct {
	mu       sync.Mutex
	clients  map[string]*domain.Client
	revenues map[domain.RevenueKey]*domain.DailyRevenue
	holidays domain.HolidaySet

	upsertCalls int
	insertCalls int
	deleteErr   error
	insertErr   error
}

var (
	_ repository.ClientRepository       = (*fakeStore)(nil)
	_ repository.DailyRevenueRepository = (*fakeStore)(nil)
	_ repository.HolidayRepository      = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		clients:  make(map[string]*domain.Client),
		revenues: make(map[domain.RevenueKey]*domain.DailyRevenue),
		holidays: domain.NewHolidaySet(),
	}
}

func (f *fakeStore) seedRevenue(rows ...*domain.DailyRevenue) {
	for _, row := range rows {
		copied := *row
		f.revenues[row.Key()] = &copied
	}
}

// snapshot devolve uma cópia ordenada da tabela fato
func (f *fakeStore) snapshot() []domain.DailyRevenue {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows := make([]domain.DailyRevenue, 0, len(f.revenues))
	for _, row := range f.revenues {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].ClientID < rows[j].ClientID
	})
	return rows
}

func (f *fakeStore) ListClients(ctx context.Context) ([]*domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	clients := make([]*domain.Client, 0, len(f.clients))
	for _, client := range f.clients {
		copied := *client
		clients = append(clients, &copied)
	}
	return clients, nil
}

func (f *fakeStore) ExistingIDs(ctx context.Context, clientIDs []string) (map[string]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	found := make(map[string]struct{})
	for _, id := range clientIDs {
		if _, ok := f.clients[id]; ok {
			found[id] = struct{}{}
		}
	}
	return found, nil
}

func (f *fakeStore) InsertClients(ctx context.Context, clients []*domain.Client) error {
	for _, client := range clients {
		if err := f.InsertClient(ctx, client); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStore) InsertClient(ctx context.Context, client *domain.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.clients[client.ClientID]; ok {
		return repository.ErrConflict
	}
	copied := *client
	f.clients[client.ClientID] = &copied
	return nil
}

func (f *fakeStore) UpdateClientName(ctx context.Context, clientID, clientName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.clients[clientID]; ok {
		client.ClientName = clientName
	}
	return nil
}

func (f *fakeStore) LatestDate(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	latest := ""
	for key := range f.revenues {
		if key.Date > latest {
			latest = key.Date
		}
	}
	return latest, nil
}

func (f *fakeStore) ListFrom(ctx context.Context, date string) ([]*domain.DailyRevenue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows := make([]*domain.DailyRevenue, 0)
	for key, row := range f.revenues {
		if key.Date >= date {
			copied := *row
			rows = append(rows, &copied)
		}
	}
	return rows, nil
}

func (f *fakeStore) UpsertBatch(ctx context.Context, rows []*domain.DailyRevenue) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.upsertCalls++
	for _, row := range rows {
		copied := *row
		f.revenues[row.Key()] = &copied
	}
	return nil
}

func (f *fakeStore) InsertBatch(ctx context.Context, rows []*domain.DailyRevenue) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}

	for _, row := range rows {
		if _, ok := f.revenues[row.Key()]; ok {
			return repository.ErrConflict
		}
	}
	for _, row := range rows {
		copied := *row
		f.revenues[row.Key()] = &copied
	}
	return nil
}

func (f *fakeStore) DeleteRange(ctx context.Context, startDate, endDate string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return 0, f.deleteErr
	}

	var deleted int64
	for key := range f.revenues {
		if key.Date >= startDate && key.Date <= endDate {
			delete(f.revenues, key)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeStore) ListHolidays(ctx context.Context) (domain.HolidaySet, error) {
	return f.holidays, nil
}

// fakeDownloader devolve sempre o mesmo conteúdo
type fakeDownloader struct {
	body        string
	contentType string
	err         error
	calls       int
}

func (d *fakeDownloader) Download(ctx context.Context) (*domain.SheetExport, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return &domain.SheetExport{Body: []byte(d.body), ContentType: d.contentType}, nil
}

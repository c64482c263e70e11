package sim

import (
	"context"
	"sync"

	"github.com/iliyamo/vegas-air-market/internal/model"
	"github.com/iliyamo/vegas-air-market/internal/repository"
)

// memStore is an in-memory inventory store for tests.  Its Sell mirrors
// the SQL conditional update: the occupancy check and the write happen
// under one lock, so concurrent sellers race exactly like they do against
// the database.
type memStore struct {
	mu           sync.Mutex
	flights      map[uint64]*model.Flight
	seats        map[uint64]*model.Seat
	history      []model.PurchaseHistory
	nextFlightID uint64
	nextSeatID   uint64
	sellErr      error // forced error for fault-path tests
}

func newMemStore() *memStore {
	return &memStore{
		flights: make(map[uint64]*model.Flight),
		seats:   make(map[uint64]*model.Seat),
	}
}

func (m *memStore) Create(ctx context.Context, f *model.Flight) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextFlightID++
	f.ID = m.nextFlightID
	cp := *f
	m.flights[f.ID] = &cp
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.flights[id]
	if !ok {
		return nil, repository.ErrFlightNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *memStore) Latest(ctx context.Context) (*model.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *model.Flight
	for _, f := range m.flights {
		if latest == nil || f.ID > latest.ID {
			latest = f
		}
	}
	if latest == nil {
		return nil, repository.ErrFlightNotFound
	}
	cp := *latest
	return &cp, nil
}

// seatStore view of the same memStore.

type memSeats struct{ *memStore }

func (m memSeats) CreateBulk(ctx context.Context, seats []model.Seat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range seats {
		m.nextSeatID++
		s.ID = m.nextSeatID
		cp := s
		m.seats[s.ID] = &cp
	}
	return nil
}

func (m memSeats) GetByFlight(ctx context.Context, flightID uint64) ([]model.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Seat
	for _, s := range m.seats {
		if s.FlightID == flightID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m memSeats) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.seats[id]
	if !ok {
		return nil, repository.ErrSeatNotFound
	}
	cp := *s
	return &cp, nil
}

func (m memSeats) Sell(ctx context.Context, seatID uint64, salePrice float64, days int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sellErr != nil {
		return false, m.sellErr
	}
	s, ok := m.seats[seatID]
	if !ok {
		return false, repository.ErrSeatNotFound
	}
	if s.IsOccupied {
		return false, nil
	}
	s.IsOccupied = true
	s.SalePrice = salePrice
	s.DaysUntilDeparture = days
	return true, nil
}

// historyStore view.

type memHistory struct{ *memStore }

func (m memHistory) Create(ctx context.Context, h *model.PurchaseHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h.ID = uint64(len(m.history) + 1)
	m.history = append(m.history, *h)
	return nil
}

// addFlight seeds a flight and returns its id.
func (m *memStore) addFlight(number string) uint64 {
	f := &model.Flight{FlightNumber: number}
	_ = m.Create(context.Background(), f)
	return f.ID
}

// addSeat seeds one seat and returns its id.
func (m *memStore) addSeat(s model.Seat) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSeatID++
	s.ID = m.nextSeatID
	m.seats[s.ID] = &s
	return s.ID
}

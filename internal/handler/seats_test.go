package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/vegas-air-market/internal/hub"
	"github.com/iliyamo/vegas-air-market/internal/model"
	"github.com/iliyamo/vegas-air-market/internal/repository"
)

// fakeSeatStore mirrors the repository's conditional-update contract: a
// missing seat and a lost occupancy race both report (false, nil).
type fakeSeatStore struct {
	mu    sync.Mutex
	seats map[uint64]*model.Seat
}

func newFakeSeatStore(seats ...model.Seat) *fakeSeatStore {
	f := &fakeSeatStore{seats: make(map[uint64]*model.Seat, len(seats))}
	for _, s := range seats {
		cp := s
		f.seats[s.ID] = &cp
	}
	return f
}

func (f *fakeSeatStore) Update(ctx context.Context, seatID uint64, u model.SeatUpdate) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.seats[seatID]
	if !ok || u.Empty() {
		return false, nil
	}
	if u.IsOccupied != nil && *u.IsOccupied && s.IsOccupied {
		return false, nil
	}
	if u.IsOccupied != nil {
		s.IsOccupied = *u.IsOccupied
	}
	if u.SalePrice != nil {
		s.SalePrice = *u.SalePrice
	}
	if u.DaysUntilDeparture != nil {
		s.DaysUntilDeparture = *u.DaysUntilDeparture
	}
	return true, nil
}

func (f *fakeSeatStore) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.seats[id]
	if !ok {
		return nil, repository.ErrSeatNotFound
	}
	cp := *s
	return &cp, nil
}

func patchSeat(t *testing.T, h *SeatHandler, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/v1/seats/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/seats/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.UpdateSeat(c))
	return rec
}

func TestUpdateSeatAppliesAndBroadcasts(t *testing.T) {
	h := hub.New()
	sub := h.Subscribe(1)
	defer h.Unsubscribe(sub)

	handler := &SeatHandler{
		Seats: newFakeSeatStore(model.Seat{ID: 5, FlightID: 1, ClassType: model.ClassEconomy}),
		Hub:   h,
	}

	rec := patchSeat(t, handler, "5", `{"is_occupied":true,"sale_price":225,"days_until_departure":3}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"applied":true`)

	require.Len(t, sub.C, 1)
	ev := <-sub.C
	assert.Equal(t, model.EventSeatUpdate, ev.Type)
	require.NotNil(t, ev.Seat)
	assert.True(t, ev.Seat.IsOccupied)
	assert.Equal(t, 225.0, ev.Seat.SalePrice)
}

func TestUpdateSeatLostRaceNotReappliedNotBroadcast(t *testing.T) {
	h := hub.New()
	sub := h.Subscribe(1)
	defer h.Unsubscribe(sub)

	handler := &SeatHandler{
		Seats: newFakeSeatStore(model.Seat{ID: 5, FlightID: 1, IsOccupied: true, SalePrice: 225}),
		Hub:   h,
	}

	rec := patchSeat(t, handler, "5", `{"is_occupied":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"applied":false`)
	assert.Empty(t, sub.C, "a no-op update must not broadcast")
}

func TestUpdateSeatMissingSeat(t *testing.T) {
	handler := &SeatHandler{Seats: newFakeSeatStore(), Hub: hub.New()}
	rec := patchSeat(t, handler, "99", `{"is_occupied":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateSeatRejectsEmptyUpdate(t *testing.T) {
	handler := &SeatHandler{
		Seats: newFakeSeatStore(model.Seat{ID: 5, FlightID: 1}),
		Hub:   hub.New(),
	}
	rec := patchSeat(t, handler, "5", `{"unknown_field":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSeatInvalidID(t *testing.T) {
	handler := &SeatHandler{Seats: newFakeSeatStore(), Hub: hub.New()}
	rec := patchSeat(t, handler, "abc", `{"is_occupied":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

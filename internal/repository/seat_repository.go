package repository // repository defines data access for seats

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/vegas-air-market/internal/model"
)

// row_number is backticked everywhere: it became a reserved word in MySQL 8.
const seatColumns = "id, flight_id, `row_number`, seat_letter, class_type, is_occupied," + `
	is_window, is_aisle, is_middle, is_extra_legroom,
	base_price, sale_price, days_until_departure`

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// CreateBulk inserts multiple seats in a single statement.  Used at flight
// creation; the ID fields of the passed structures are not populated.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := "INSERT INTO seats (flight_id, `row_number`, seat_letter, class_type, is_occupied," + `
	          is_window, is_aisle, is_middle, is_extra_legroom, base_price, sale_price, days_until_departure) VALUES `
	args := make([]interface{}, 0, len(seats)*12)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args,
			s.FlightID, s.RowNumber, s.SeatLetter, s.ClassType, s.IsOccupied,
			s.IsWindow, s.IsAisle, s.IsMiddle, s.IsExtraLegroom,
			s.BasePrice, s.SalePrice, s.DaysUntilDeparture)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetByFlight retrieves all seats of a flight ordered by row then letter.
func (r *SeatRepo) GetByFlight(ctx context.Context, flightID uint64) ([]model.Seat, error) {
	const q = `SELECT ` + seatColumns + `
	           FROM seats
	           WHERE flight_id = ?
	           ORDER BY ` + "`row_number`" + `, seat_letter`
	rows, err := r.db.QueryContext(ctx, q, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := scanSeat(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT ` + seatColumns + ` FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.FlightID, &s.RowNumber, &s.SeatLetter, &s.ClassType, &s.IsOccupied,
		&s.IsWindow, &s.IsAisle, &s.IsMiddle, &s.IsExtraLegroom,
		&s.BasePrice, &s.SalePrice, &s.DaysUntilDeparture,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Sell marks a seat occupied with its sale price and the frozen
// days-until-departure value, but only if the seat is still unoccupied.
// The WHERE clause is the linearization point for the one-way occupancy
// transition: of any number of concurrent callers, exactly one observes
// RowsAffected == 1.  Losing the race is reported as (false, nil), never
// as an error.
func (r *SeatRepo) Sell(ctx context.Context, seatID uint64, salePrice float64, daysUntilDeparture int) (bool, error) {
	const q = `UPDATE seats
	           SET is_occupied = 1, sale_price = ?, days_until_departure = ?
	           WHERE id = ? AND is_occupied = 0`
	res, err := r.db.ExecContext(ctx, q, salePrice, daysUntilDeparture, seatID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Update applies an explicit partial update to a seat.  Only the fields
// carried by model.SeatUpdate can ever be touched.  An occupancy change
// goes through the same conditional predicate as Sell so an observer
// request can never flip an already sold seat.  Returns sql.ErrNoRows
// semantics via ErrSeatNotFound when nothing matched.
func (r *SeatRepo) Update(ctx context.Context, seatID uint64, u model.SeatUpdate) (bool, error) {
	if u.Empty() {
		return false, nil
	}
	query := `UPDATE seats SET `
	args := make([]interface{}, 0, 4)
	first := true
	appendSet := func(col string, v interface{}) {
		if !first {
			query += ", "
		}
		query += col + " = ?"
		args = append(args, v)
		first = false
	}
	if u.IsOccupied != nil {
		appendSet("is_occupied", *u.IsOccupied)
	}
	if u.SalePrice != nil {
		appendSet("sale_price", *u.SalePrice)
	}
	if u.DaysUntilDeparture != nil {
		appendSet("days_until_departure", *u.DaysUntilDeparture)
	}
	query += ` WHERE id = ?`
	args = append(args, seatID)
	if u.IsOccupied != nil && *u.IsOccupied {
		query += ` AND is_occupied = 0`
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// scanSeat reads one seat row from a *sql.Rows cursor.
func scanSeat(rows *sql.Rows, s *model.Seat) error {
	return rows.Scan(
		&s.ID, &s.FlightID, &s.RowNumber, &s.SeatLetter, &s.ClassType, &s.IsOccupied,
		&s.IsWindow, &s.IsAisle, &s.IsMiddle, &s.IsExtraLegroom,
		&s.BasePrice, &s.SalePrice, &s.DaysUntilDeparture,
	)
}

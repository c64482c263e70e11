package repository // repository defines data access for flights

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/vegas-air-market/internal/model"
)

// FlightRepo provides methods to work with flights in the database.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo constructs a FlightRepo with the given DB handle.
func NewFlightRepo(db *sql.DB) *FlightRepo {
	return &FlightRepo{db: db}
}

// Create inserts a flight record. On success the flight's ID is populated.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
	const q = `INSERT INTO flights (flight_number, departure_date) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, f.FlightNumber, f.DepartureDate.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// GetByID retrieves a flight by its id.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
	const q = `SELECT id, flight_number, departure_date, created_at
	           FROM flights WHERE id = ?`
	var f model.Flight
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&f.ID, &f.FlightNumber, &f.DepartureDate, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Latest retrieves the most recently created flight, i.e. the one whose
// simulation is (or should be) running.  Returns ErrFlightNotFound on an
// empty table so the caller can bootstrap the first flight.
func (r *FlightRepo) Latest(ctx context.Context) (*model.Flight, error) {
	const q = `SELECT id, flight_number, departure_date, created_at
	           FROM flights ORDER BY id DESC LIMIT 1`
	var f model.Flight
	err := r.db.QueryRowContext(ctx, q).
		Scan(&f.ID, &f.FlightNumber, &f.DepartureDate, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

// List returns all flights ordered by id.  Used by the public API only;
// the simulation itself never needs more than the latest flight.
func (r *FlightRepo) List(ctx context.Context) ([]model.Flight, error) {
	const q = `SELECT id, flight_number, departure_date, created_at
	           FROM flights ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Flight
	for rows.Next() {
		var f model.Flight
		if err := rows.Scan(&f.ID, &f.FlightNumber, &f.DepartureDate, &f.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

package repository // repository for purchase history persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/iliyamo/vegas-air-market/internal/model"
)

// PurchaseHistoryRepo stores the per-class purchase summaries produced by
// the archiver when a flight completes.  The day buckets are kept as a
// JSON object column keyed by the bucket number, mirroring how the data
// is consumed (sparse: only days with purchases appear).
type PurchaseHistoryRepo struct {
	db *sql.DB
}

// NewPurchaseHistoryRepo returns a repo bound to the given database.
func NewPurchaseHistoryRepo(db *sql.DB) *PurchaseHistoryRepo {
	return &PurchaseHistoryRepo{db: db}
}

// Create inserts one purchase history record.  DailyPurchases is encoded
// as a JSON object with string keys ("5": 2).
func (r *PurchaseHistoryRepo) Create(ctx context.Context, h *model.PurchaseHistory) error {
	encoded := make(map[string]int, len(h.DailyPurchases))
	for day, count := range h.DailyPurchases {
		encoded[strconv.Itoa(day)] = count
	}
	body, err := json.Marshal(encoded)
	if err != nil {
		return err
	}
	const q = `INSERT INTO purchase_history (flight_number, class_type, daily_purchases, departure_date)
	           VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, h.FlightNumber, h.ClassType, body, h.DepartureDate.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// ListByFlightNumber retrieves the stored records for one flight, used by
// the read API that feeds the demand-forecast consumer.
func (r *PurchaseHistoryRepo) ListByFlightNumber(ctx context.Context, flightNumber string) ([]model.PurchaseHistory, error) {
	const q = `SELECT id, flight_number, class_type, daily_purchases, departure_date
	           FROM purchase_history WHERE flight_number = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, flightNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PurchaseHistory
	for rows.Next() {
		var h model.PurchaseHistory
		var body []byte
		if err := rows.Scan(&h.ID, &h.FlightNumber, &h.ClassType, &body, &h.DepartureDate); err != nil {
			return nil, err
		}
		decoded := map[string]int{}
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, err
		}
		h.DailyPurchases = make(map[int]int, len(decoded))
		for k, v := range decoded {
			day, err := strconv.Atoi(k)
			if err != nil {
				continue
			}
			h.DailyPurchases[day] = v
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

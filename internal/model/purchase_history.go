package model

import "time"

// HistoryBucketMax is the largest days-until-departure bucket recorded in
// a purchase history record.  Values outside [0, HistoryBucketMax] are
// clamped before bucketing.
const HistoryBucketMax = 120

// PurchaseHistory aggregates one completed flight's purchases for a single
// cabin class.  DailyPurchases maps a days-until-departure bucket to the
// number of seats of that class sold at that distance from departure.  The
// record is write-once: the archiver produces it when the countdown reaches
// zero and nothing mutates it afterwards.
type PurchaseHistory struct {
	ID             uint64      // purchase_history.id
	FlightNumber   string      // purchase_history.flight_number
	ClassType      string      // purchase_history.class_type
	DailyPurchases map[int]int // purchase_history.daily_purchases (JSON column)
	DepartureDate  time.Time   // purchase_history.departure_date
}

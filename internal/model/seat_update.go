package model

// SeatUpdate is the explicit, exhaustively-cased set of seat fields an
// inbound request may change.  Nil pointers mean "leave as is"; unknown
// JSON fields are dropped during binding.  Listing the mutable fields
// here, rather than applying arbitrary keys by name, keeps the identity
// and layout columns (row, letter, class, position flags, base price)
// immutable by construction.
type SeatUpdate struct {
	IsOccupied         *bool    `json:"is_occupied,omitempty"`
	SalePrice          *float64 `json:"sale_price,omitempty"`
	DaysUntilDeparture *int     `json:"days_until_departure,omitempty"`
}

// Empty reports whether the update would change nothing.
func (u SeatUpdate) Empty() bool {
	return u.IsOccupied == nil && u.SalePrice == nil && u.DaysUntilDeparture == nil
}

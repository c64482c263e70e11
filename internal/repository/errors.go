// Package repository implements the inventory store on MySQL.  Sentinel
// errors defined here let callers distinguish "nothing there" from a real
// storage failure: the simulation treats not-found as "nothing to do" and
// any other error as a transient fault for the current tick.
package repository

import "errors"

// ErrFlightNotFound is returned when a flight lookup yields no rows.
var ErrFlightNotFound = errors.New("flight not found")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

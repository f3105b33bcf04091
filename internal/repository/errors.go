package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = errors.New("board not found")

	// ErrItemNotFound is returned when a board item is not found
	ErrItemNotFound = errors.New("board item not found")

	// ErrProductNotFound is returned when a product is not found
	ErrProductNotFound = errors.New("product not found")

	// ErrReservationNotFound is returned when a held reservation is not found
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInsufficientStock is returned when a reservation would push a
	// product's committed quantity past its total stock somewhere in the
	// requested window
	ErrInsufficientStock = errors.New("insufficient stock for requested window")
)

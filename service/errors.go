package service

import "errors"

var (
	// ErrMissingID is returned when an update or delete is attempted on a
	// contract without a remote document id. No network call is made.
	ErrMissingID = errors.New("contract is missing the remote document id")

	// ErrBusy is returned when a mutating operation is triggered while
	// another one is still in flight.
	ErrBusy = errors.New("another operation is already in progress")

	// ErrNotConfirmed is returned when a delete is attempted without
	// explicit confirmation.
	ErrNotConfirmed = errors.New("delete requires explicit confirmation")
)

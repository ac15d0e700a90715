package domain

import "errors"

var ErrInvalidInput = errors.New("invalid input")
var ErrInvalidIdentifier = errors.New("invalid aircraft identifier")

// ErrDataSourceUnavailable marks upstream failures. Adapters log it and
// report the lookup as unavailable; it never reaches a transport.
var ErrDataSourceUnavailable = errors.New("data source unavailable")

package domain

import "errors"

var (
	// ErrLocationNotFound: the geocoder could not resolve the query.
	// Never retried under a different interpretation.
	ErrLocationNotFound = errors.New("location not found")

	// ErrNoCandidates: the place resolved but every provider settled
	// with zero usable listings.
	ErrNoCandidates = errors.New("no hotel data for query")
)

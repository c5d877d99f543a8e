package chem

import "errors"

// Errors
var (
	ErrUnknownSpecies   = errors.New("unknown atomic species")
	ErrMalformedCount   = errors.New("malformed atom count")
	ErrMalformedFormula = errors.New("malformed formula")
	ErrMalformedCu      = errors.New("malformed CU index")
	ErrHydrogenRange    = errors.New("hydrogen count out of range")
	ErrBadEncoding      = errors.New("bad formula encoding")
	ErrBadCatalogParam  = errors.New("bad catalog param")
	ErrCatalogClosed    = errors.New("catalog is closed")
	ErrCatalogReadOnly  = errors.New("catalog is read-only")
)

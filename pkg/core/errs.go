package core

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrHTTPStatus        = errors.New("unexpected http status")
	ErrMalformedResponse = errors.New("malformed response")
	ErrCatalogLoad       = errors.New("failed to load exchange markets")
	ErrCatalogNotLoaded  = errors.New("exchange markets not loaded")
	ErrInvalidPair       = errors.New("invalid pair")
	ErrBaseAssetEmpty    = errors.New("empty base asset")
	ErrQuoteAssetEmpty   = errors.New("empty quote asset")
)

package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
	// ErrCheckerNotConfigured is returned when the DKIM checker is nil
	ErrCheckerNotConfigured = errors.New("dkim checker not configured")
	// ErrSelectorRequired is returned when a check request omits the selector
	ErrSelectorRequired = errors.New("selector is required")
	// ErrDomainRequired is returned when a request omits the domain
	ErrDomainRequired = errors.New("domain is required")
)

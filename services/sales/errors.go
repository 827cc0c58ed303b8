package main

import "errors"

// Failure taxonomy of the place-order workflow. Handlers map each kind to a
// distinct HTTP status; gateways wrap these sentinels so callers can match
// with errors.Is.
var (
	// ErrInvalidRequest means the caller's input violates a precondition.
	// No remote call is issued for such requests.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProductNotFound means the requested product is unknown upstream.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock means the requested quantity exceeds what is on
	// hand. Stock is left untouched.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrUpstreamUnavailable covers transport failures and timeouts.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamRejected covers non-2xx upstream responses.
	ErrUpstreamRejected = errors.New("upstream rejected request")

	// ErrUpstreamMalformed covers undecodable upstream payloads.
	ErrUpstreamMalformed = errors.New("upstream returned malformed payload")
)

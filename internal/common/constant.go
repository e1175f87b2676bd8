// Package common contains shared constants and sentinel errors used across
// scanboard components.
package common

const (
	// AppName is the display and binary name.
	AppName = "scanboard"

	// DefaultAPIBaseURL is the API root used when nothing is configured.
	DefaultAPIBaseURL = "http://localhost:8080/api/v1"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-Id"

	// TotalCountHeaderName carries the total item count for bare-array list
	// responses.
	TotalCountHeaderName = "X-Total-Count"

	// TokensMetadataKey is the metadata key holding the serialized token pair.
	TokensMetadataKey = "tokens"

	// UsernameMetadataKey is the metadata key holding the logged-in email.
	UsernameMetadataKey = "username"
)

// Package common contains shared constants and sentinel errors used across
// the IT Controller client.
package common

// Keys of the persisted session in local storage.
const (
	TokenStorageKey = "it_suite_token"
	UserStorageKey  = "it_suite_user"
)

// DefaultAPIBaseURL is the remote REST API root used when nothing is configured.
const DefaultAPIBaseURL = "http://localhost:5021/api"

// RequestIDHeaderName carries the per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// Package common contains shared constants and sentinel errors used across
// receiptkeeper components.
package common

// AuthorizationHeaderName is the HTTP header that carries the credential token
// on outbound API requests.
const AuthorizationHeaderName = "Authorization"

// AuthorizationScheme prefixes the credential token in the Authorization header,
// e.g. "Token 9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b".
const AuthorizationScheme = "Token"

// RequestIDHeaderName carries a per-call correlation id.
const RequestIDHeaderName = "X-Request-ID"

// ContentTypeJSON is the media type used for structured request bodies.
const ContentTypeJSON = "application/json"

// TokenMetadataKey is the durable storage key holding the credential token.
const TokenMetadataKey = "token"

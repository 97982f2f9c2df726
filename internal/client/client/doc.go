// Package client contains the transport layer of the receiptkeeper client.
//
// # Overview
//
// The package provides:
//  1. Gateway, the single entry point through which every backend call
//     passes. It resolves the base address at call time, attaches the
//     "Authorization: Token <value>" header, serializes bodies (JSON or
//     multipart Form) and classifies responses.
//  2. A transport-agnostic API contract (see the Client interface) covering
//     authentication, transactions, products, receipt scanning and the
//     profit-and-loss calendar, with HTTPClient as its implementation on top
//     of Gateway. Every decoded payload is validated against its shape.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite database that keeps the credential token across restarts.
//
// # Error Handling
//
//   - ErrConfiguration: no base address configured. Fatal, returned before
//     any network attempt.
//   - *HTTPError: non-2xx status. errors.Is(err, ErrUnauthorized) holds for
//     401/403 and errors.Is(err, ErrNotFound) for 404.
//   - *ParseError: malformed JSON despite a JSON content type, or a payload
//     that fails validation.
//   - ErrUnavailable: the request never produced a response.
//
// # Concurrency & Contexts
//
// Gateway and HTTPClient are safe for concurrent use. Each call performs
// exactly one round trip with no retries and no timeout of its own; cancel
// the context to abandon an in-flight call.
package client

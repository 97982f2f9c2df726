// Package services contains the application services of the receiptkeeper
// client. Each service combines the typed API client with the session store:
// it takes the current token from the session, refuses to call the API
// without one and keeps the session up to date after account changes.
package services

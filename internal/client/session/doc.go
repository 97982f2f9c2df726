// Package session holds the authentication state of the client: the
// credential token, the profile derived from it and whether the durable
// token has been read yet.
//
// A Store is built with its collaborators (token storage, profile fetcher,
// logger) and reports every state change to subscribed listeners. Screen
// changes after login and logout are done by a listener returned from
// NavigationAdapter; the store never navigates.
package session

// Package client talks to the GameKeeper HTTP API.
//
// HTTPClient covers every public endpoint: account registration and login,
// token verification, the save record, the online list and heartbeats. It
// keeps the session token obtained from Register or Login and sends it as a
// bearer token on player calls.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Error responses from the server
// are returned as *APIError carrying the HTTP status and the stable error
// kind; 401 and 403 responses also match ErrUnauthorized with errors.Is.
package client

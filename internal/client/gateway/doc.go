// Package gateway is the single door to the remote REST API.
//
// It resolves paths against the configured base URL, attaches the JSON
// content type, the bearer token carried by the request context
// (session.WithCredentials) and a request id, and classifies failures:
//
//   - transport failures come back as *NetworkError (errors.Is ErrNetwork);
//   - 401 on an authenticated call fires the unauthorized hook and returns
//     ErrAuthExpired;
//   - any other status is returned as a Response; Response.Err turns a
//     non-2xx status into *ApplicationError.
package gateway

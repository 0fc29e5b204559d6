// Package storage is the client's "local storage": a flat string key/value
// table persisted in SQLite. The session token and user name live here.
package storage

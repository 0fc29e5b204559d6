// Package cli provides the interactive IT Controller command-line client.
//
// It wires the services of the client into a REPL. A stored session is
// restored at start-up; otherwise the user registers or logs in first.
// When the server rejects the token, the session is dropped and the next
// prompt asks for a new login.
//
// Views:
//   - tasks, filter, board: the task board and its full-screen view
//   - notes: markdown notes
//   - vault: credentials, masked unless revealed
//   - feed: recent activity grouped by day
//   - products: the inventory
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

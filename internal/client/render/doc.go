// Package render turns client state into terminal text: the board lanes,
// markdown notes, the masked vault, the activity feed and the inventory.
// Functions here never talk to the server.
package render

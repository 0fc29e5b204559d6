// Package models holds the client-side domain types of the IT Controller
// API and their wire codecs.
//
// Domain types carry symbolic enumeration labels (TaskStatus, TaskCategory,
// ...). Wire types (TaskWire, NoteWire, ...) carry the integer ordinals the
// server speaks; the translation goes through the explicit enum tables
// declared in enums.go and fails with enum.ErrDecode on unknown values.
package models

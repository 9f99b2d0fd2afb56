// Package storage implements the durable key-value capability used for the session.
//
// FileRepository keeps a flat JSON object of string values on disk and
// exposes the Repository interface that the session store depends on.
package storage

// Package status reports whether a session is stored.
package status

// Package logout implements the non-interactive logout command.
package logout

// Package login implements the non-interactive login command.
package login

// Package send implements the non-interactive broadcast command.
package send

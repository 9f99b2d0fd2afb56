// Package integration holds end-to-end tests that run the commands against a fake admin API.
package integration

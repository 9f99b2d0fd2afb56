// Package common holds the HTTP client shared by the console flows.
//
// Client wraps a resty client bound to the admin API base URL. It decorates
// every request with the stored bearer token, a request id and a user agent,
// maps failures onto the failure taxonomy and notifies subscribers when the
// server answers 401.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

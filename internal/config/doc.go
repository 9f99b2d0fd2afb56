// Package config defines the console settings and provides helpers to load,
// validate and save them in YAML format.
//
// The Config type holds the API base URL, the request timeout, the session
// file location and the log level. Missing default settings fall back to the
// compiled-in values.
package config

// Package version exposes build metadata for the console.
//
// Version, Commit and BuildTime are injected via Go ldflags and default to
// local-build values. Short feeds the User-Agent header, Full the version
// command.
package version

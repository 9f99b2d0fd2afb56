// Package auth implements the administrator login and logout flows.
//
// Flow persists only the access token of a successful login, asks for
// confirmation before an operator logout and performs a forced logout
// whenever the API client reports a 401.
package auth

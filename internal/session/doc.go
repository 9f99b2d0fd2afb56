// Package session holds the administrator access token.
//
// Store wraps a key-value Repository with a fixed key and answers whether an
// administrator is logged in. Read failures fail closed: a store that cannot
// be read reports no token.
package session

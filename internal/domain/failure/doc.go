// Package failure defines the operator-facing error taxonomy.
//
// Every failure surfaced to a screen is a *Error whose text is the message to
// display. errors.Is matches one of the kind sentinels: ErrValidation,
// ErrServerRejected, ErrNetworkUnavailable or ErrUnauthorized.
package failure

// Package app is the composition root of the console.
//
// New loads the settings, configures logging and builds the session store,
// the HTTP client and both flows. The App owns the session for the lifetime
// of the process.
package app

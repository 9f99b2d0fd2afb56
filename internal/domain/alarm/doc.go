// Package alarm contains the broadcast types sent to and returned by the admin API.
//
// It defines Request (the draft an operator fills in), Type (the broadcast
// category) and Result (aggregate delivery counts reported by the server).
package alarm

// Package alarm implements the broadcast submission flow.
//
// Flow validates a draft, sends it through the API client, resets the draft
// after a successful send and refuses a second submission while one is
// outstanding.
package alarm

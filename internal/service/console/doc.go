// Package console implements the interactive terminal with its two screens.
//
// The loop shows the login screen while no session is stored and the alarm
// screen otherwise, re-evaluating the session after every action. Prompter
// and RenderResult are shared with the non-interactive commands.
package console

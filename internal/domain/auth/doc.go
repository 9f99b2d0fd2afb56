// Package auth contains the administrator credential types exchanged with the admin API.
package auth

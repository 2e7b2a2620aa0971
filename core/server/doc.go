// Package server holds the HTTP server configuration for the venue
// lookup API.
package server

// Package middleware groups the Fiber middleware used by the lookup
// server.
//
//   - rayid assigns each request a unique ray id for log correlation.
//   - auth enforces the configured API key.
package middleware

// Package utils provides common utility functions for venue-manager.
// It currently covers path expansion for user-supplied file locations.
package utils

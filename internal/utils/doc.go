// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password
// hashing, HMAC signing, HTTP response writing, JWT token generation
// and validation, redirect target checks and random names.
package utils

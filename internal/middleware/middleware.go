// Package middleware holds the global and route-specific echo middleware:
// Clerk authentication, request logging and IDs, CORS, rate limiting,
// New Relic tracing and panic recovery.
package middleware

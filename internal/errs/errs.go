// Package errs defines the error shapes returned to HTTP clients.
//
// Every error that leaves a handler is funneled into an HTTPError so clients
// receive a consistent JSON body: a machine-readable code, a message, the
// status, optional field errors and an optional action hint.
package errs

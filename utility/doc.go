// Package utility implements the stateless computations served by the API:
// body-mass-index classification, password generation, numeric list
// analysis and temperature conversion.
//
// Every function validates its own inputs and returns either a result value
// or a *Error, never both. The functions do no I/O and hold no state, so they
// can be called from HTTP handlers, the CLI, or tests alike.
//
// Human-readable messages are in Portuguese to match the field names of the
// public JSON API.
package utility

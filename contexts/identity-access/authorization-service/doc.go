// Package authorization owns the request-scoped access decision: bearer
// token verification, directory lookup, and policy evaluation.
//
// The module is deliberately self-contained. It carries its own role
// vocabulary and consumes account state through the Directory port so
// that no import crosses into another bounded context; runtime wiring
// supplies the adapter that bridges the two.
//
// Decisions fail closed. A verifier or directory failure is reported as
// a denial, never as access.
package authorization

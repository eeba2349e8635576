// Package accounts implements the account lifecycle and admin-approval
// workflow for the platform.
//
// Layering:
// - domain: invariants and sentinel errors
// - application: commands/queries/workers using explicit ports
// - ports: stable boundaries for persistence, notification, and events
// - adapters: concrete memory, postgres, email, and event publisher implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under the identity-access context.
// - Do not import other context adapters into domain/application.
// - Role and approval-status normalization live in ports and are the only
//   place raw stored values are interpreted.
package accounts

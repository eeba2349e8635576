// Package newsletter implements double-opt-in mailing list membership:
// subscribe, confirm, unsubscribe. Confirmation emails are advisory;
// the subscription row is the source of truth.
package newsletter

// Package notify delivers optional push notifications through ntfy.
//
// Notifications are strictly best-effort: the daemon logs delivery failures
// and keeps classifying. When no topic is configured every call is a no-op.
package notify

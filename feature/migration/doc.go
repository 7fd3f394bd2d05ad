// Package migration reconciles sheet rows against the remote entity
// platform: it creates replacement entities when a row signals readiness,
// keeps status and labels aligned in both directions, and tracks every
// change made during a pass for reporting.
package migration

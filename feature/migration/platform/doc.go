// Package platform defines the contract against the remote entity
// platform: the capability surface shared by live entities and report
// snapshots, and the Client used by the reconciliation engine to read
// and mutate remote state.
package platform

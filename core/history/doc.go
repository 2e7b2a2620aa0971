// Package history persists an audit trail of merge runs.
//
// Every time a reconciliation run persists a namespace table, one MergeRun
// row is recorded: the run id, the namespace, record counts, and the
// safety verdict. The store is optional; a run proceeds unchanged when no
// database is configured.
//
// SQLite is the default driver for the local CLI case; MySQL is supported
// for shared deployments.
package history

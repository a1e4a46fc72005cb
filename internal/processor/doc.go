// Package processor contains the core run logic of poai. It validates the
// command-line selection, builds the provider, and dispatches to single-file
// or directory translation. It also handles rollback, backups and the
// run report.
package processor

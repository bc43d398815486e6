// Package oplog keeps an audit trail of administrative actions:
// deletions, purges, health checks and documentation runs. Handlers
// append an Entry after each action; operators read the trail back
// newest first to answer "who deleted that subject, and when".
//
// # Backends
//
// Two backends implement Store, selected by Config.Type:
//
//   - "memory": a fixed-size ring that keeps the most recent entries
//     in process. Nothing survives a restart. This is the default and
//     needs no configuration.
//   - "postgres": entries persisted through GORM. The entry table is
//     migrated automatically on start, so the backend works against an
//     empty database.
//
// # Recording
//
// NewEntry stamps an entry with a fresh UUID and the current UTC time:
//
//	entry := oplog.NewEntry(oplog.OpSoftDelete, "orders-value", true)
//	entry.Actor = "admin"
//	if err := store.Append(ctx, entry); err != nil {
//	    // The action itself already happened; log and move on.
//	}
//
// Append failures never roll back the action they describe. Callers
// log them and continue.
//
// # Reading
//
// Recent returns entries in reverse append order:
//
//	entries, err := store.Recent(ctx, 20)
//
// A limit of zero or less falls back to DefaultRecentLimit.
package oplog

// Package lifecycle manages the deletion lifecycle of schema registry
// subjects: filtered listing, soft and hard deletion, bulk deletion
// with per-item accounting, and purging of soft-deleted subjects.
//
// # Usage
//
//	client, err := registry.NewClient(registry.Config{URL: "http://localhost:8081"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	manager, err := lifecycle.NewManager(client, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Soft delete keeps the subject recoverable.
//	result := manager.SoftDelete(ctx, "orders-value")
//	if !result.Success {
//	    log.Printf("delete failed: %s", result.Error)
//	}
//
//	// Purge permanently removes everything in the soft-deleted state.
//	purge, err := manager.PurgeSoftDeleted(ctx)
//
// # Failure model
//
// Delete operations return result records instead of errors: a failed
// delete sets Success false and carries the registry's message. Only
// operations that cannot produce a partial result, such as the
// listings behind FilterSubjects and PurgeSoftDeleted, return an
// error. Bulk operations attempt every subject and report full
// accounting; success and failure counts always add up to the input
// length, and nothing is rolled back.
//
// # Hard delete sequencing
//
// The registry only permits permanent deletion after a soft delete, so
// HardDelete always issues the soft delete first. The outcome of that
// stage does not gate the permanent call (a repeat soft delete of an
// already-deleted subject fails, and that must not block the purge);
// it is attached to the result as SoftDelete so it stays visible.
//
// # Filtering
//
// Filter conditions are conjunctive and Pattern is a literal substring
// match only. Filtering by MinVersions costs one registry call per
// subject that passes the name condition.
package lifecycle

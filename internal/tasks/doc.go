// Package tasks reconciles the local station catalog with the reference list.
//
// # Diff Sets
//
// [Diff] derives three sets from a reference snapshot and a local snapshot:
//
//  1. Insert : reference minus local, by frequency
//  2. Update : (reference ∩ local by frequency) minus local, by frequency and name truncated to 15 characters
//  3. Delete : local minus reference, by frequency
//
// Insert and delete never share a frequency, and every update is a frequency present on both sides whose
// truncated names differ. Sets are distinct by key, so a duplicated reference row yields one command.
//
// # Snapshots
//
// [Reconciler] caches both collections. The reference snapshot is fetched once, filtered to the broadcast band
// (87.5 to 108.0 MHz inclusive) and never refreshed. The local snapshot is dropped after each completed write,
// so the next diff reflects the applied commands. A failed write keeps the stale snapshot.
//
// # Commit Protocol
//
// [Reconciler.Sync] runs update, delete and insert in that order against one snapshot and drops it only after
// all three succeed. Empty sets are silent no-ops that never touch the store.
//
// # Progress Reporting
//
// Write operations accept an optional channel of [ProgressUpdate]. Updates use select with default to prevent blocking.
package tasks

// Package reconcile computes the structural edits that turn one ordered list
// of sections, each holding an ordered list of rows, into another.
//
// Identity is equality: an element of the new list is the same element as an
// equal element of the old list. An element that kept its identity but changed
// content reports so through NeedsReload and is refreshed in place.
//
// # Two phases
//
// A Plan is applied as two atomic batches, and the second must only start
// once the first has finished:
//
//   - Phase1 deletes sections and rows (old indices), inserts them (indices
//     after the batch) and reloads whole sections whose content changed.
//   - Phase2 moves sections and rows from their position after Phase1 to their
//     final index and reloads changed rows.
//
// Indices in each phase are computed against different intermediate states.
// Merging the two batches into one corrupts them.
//
// # Duplicates
//
// Lists may contain several equal elements. They are paired by occurrence: the
// k-th equal element of the new list matches the k-th equal element of the
// old list. Surplus copies are inserted or deleted.
//
// # Minimal moves
//
// Inserted elements and the largest order-preserving subset of the retained
// ones stay where they are. Only the remaining retained elements are moved.
// A rotation such as [A B C] to [C A B] therefore produces a single move.
// Among subsets of equal size the one with most elements already at their
// final index is kept, so reversing [A B C] moves only A and C.
//
// The package does no locking. A plan is computed from two snapshots and
// must be applied to a view that still shows the old snapshot, one
// reconciliation at a time.
package reconcile

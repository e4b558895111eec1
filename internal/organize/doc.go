// Package organize implements the placement engine behind "shelve
// organize": it scans a source tree, classifies each file by extension,
// and relocates it into the destination's category and extension layout.
//
// A run has two phases. The scan snapshots every regular file under the
// source first, so counters never depend on readdir timing relative to
// the run's own placements. Processing then walks the snapshot in path
// order: classify, resolve a collision-free target, optionally skip
// content duplicates, and execute the transfer. Dry runs share every
// decision with real runs and differ only in the final step.
package organize

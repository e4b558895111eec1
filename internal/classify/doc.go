// Package classify maps files to category labels.
//
// The default table covers common extension families (Images, Documents,
// Audio, Video, Archives, Code, CAD); unmatched extensions resolve to a
// fallback label. Callers may merge overrides from configuration on top of
// the defaults before a run starts, and may optionally enable content
// sniffing so files the table cannot place are matched by their leading
// magic bytes instead.
//
// Lookup is pure and case-insensitive. Extension derivation follows the
// rules the destination layout depends on: only the final suffix counts,
// and hidden files without a further suffix have no extension at all.
package classify

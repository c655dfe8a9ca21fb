// Package capture stores point snapshots taken from tracked devices and
// persists them to disk.
//
// A Point records the pose of a single device at the moment of capture,
// together with a monotonically increasing sequence number. Points
// accumulate in a Store until they are saved to a tab-delimited file or
// cleared.
//
// The optional Repository archives saved sessions to SQLite so earlier
// captures remain inspectable after the file on disk has been
// overwritten.
package capture

// Package guard wraps a buffer.Allocator with guard-page
// instrumentation for catching buffer overruns, underruns, and
// use-after-free during development.
//
// # Layout
//
// Every allocation is padded with one page on each side:
//
//	+--------------+------------------+---------------+
//	| header page  | user region      | trailing page |
//	| (read-only)  | (read/write)     | (no access)   |
//	+--------------+------------------+---------------+
//
// The leading page carries a small header: the requested size, a live
// magic value, and a textual snapshot of the call stack at the most
// recent Alloc or Free. Both padding pages have write access removed
// for the lifetime of the allocation, so a write one byte before or
// after the user region faults immediately instead of silently
// corrupting a neighbor.
//
// # Ownership
//
// Alloc returns an Allocation record pairing the user-visible region
// with the raw region that backs it. Free consumes the record; a second
// Free of the same record, or a record whose header magic has been
// cleared or clobbered, is a contract violation. Violations are
// returned as errors wrapping ErrNotLive, or escalate to a panic when
// Config.Fatal is set.
//
// The guard layer is a decorator, not a build mode: production code
// simply uses the base allocator directly and skips this package.
package guard

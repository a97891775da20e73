// Package buffer provides whole-page, page-aligned memory allocation by
// delegating to the operating system's mapping facility.
//
// The core abstraction is the Allocator interface:
//
//   - Alloc(size): obtain a page-aligned region of size bytes
//   - Free(b): return a region previously obtained from Alloc
//
// System is the one OS-backed implementation carried by a build; the
// platform facility behind it (anonymous mmap, VirtualAlloc, or an
// aligned heap slice on targets with neither) is fixed at build time.
//
// There is no sub-page allocation, no free list, and no pooling here.
// Callers that want buffer reuse layer their own pool on top. For
// overrun detection during development, wrap an Allocator with
// buffer/guard.
package buffer

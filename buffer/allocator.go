package buffer

import "fmt"

// DefaultLimit is the soft ceiling on a single request when no limit is
// configured. It is deliberately high (buffer caches can run to several
// gigabytes) while still catching runaway size computations upstream.
const DefaultLimit = 0x30000000

// Allocator grants and releases whole page-aligned regions.
type Allocator interface {
	// Alloc returns a page-aligned region of exactly size bytes, or an
	// error wrapping ErrExhausted when the OS cannot satisfy the request.
	// Callers are expected to request multiples of PageSize; the
	// allocator does not round.
	Alloc(size int) ([]byte, error)

	// Free releases a region previously returned by Alloc. Free(nil) is
	// a no-op. Freeing an address the OS no longer recognizes is silently
	// ignored.
	Free(b []byte) error
}

// System allocates page-aligned regions directly from the operating
// system facility selected for the build target.
type System struct {
	// Limit is a soft ceiling on a single request in bytes. Zero or
	// negative means DefaultLimit.
	Limit int
}

var _ Allocator = (*System)(nil)

func (s *System) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadSize, size)
	}
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if size > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLarge, size, limit)
	}
	return sysAlloc(size)
}

func (s *System) Free(b []byte) error {
	if b == nil {
		return nil
	}
	return sysFree(b)
}

//go:build !unix && !windows

package buffer

import "unsafe"

// Targets with no mapping facility (js, wasip1, plan9) get page
// alignment by over-allocating a plain slice and re-slicing to the
// first page boundary. The GC reclaims the backing array once the
// caller drops the region, so sysFree has nothing to do.
func sysAlloc(size int) ([]byte, error) {
	page := PageSize()
	raw := make([]byte, size+page)
	off := int(uintptr(unsafe.Pointer(&raw[0])) % uintptr(page))
	if off != 0 {
		off = page - off
	}
	return raw[off : off+size : off+size], nil
}

func sysFree(b []byte) error {
	return nil
}

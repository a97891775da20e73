//go:build unix

package buffer

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// sysAlloc maps anonymous pages. mmap returns page-aligned addresses by
// construction, so no alignment fixup is needed.
func sysAlloc(size int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %v", ErrExhausted, size, err)
	}
	return b, nil
}

func sysFree(b []byte) error {
	err := unix.Munmap(b)
	if errors.Is(err, unix.EINVAL) {
		// Address the kernel does not recognize as a live mapping;
		// treat as a no-op for callers.
		return nil
	}
	return err
}

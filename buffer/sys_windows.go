//go:build windows

package buffer

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// sysAlloc commits fresh pages with VirtualAlloc. Regions come back
// page-aligned (in fact allocation-granularity aligned) and zeroed.
func sysAlloc(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("%w: VirtualAlloc %d bytes: %v", ErrExhausted, size, err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func sysFree(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	err := windows.VirtualFree(uintptr(unsafe.Pointer(&b[0])), 0, windows.MEM_RELEASE)
	if errors.Is(err, windows.ERROR_INVALID_ADDRESS) {
		// Address the OS does not recognize as a live region; no-op.
		return nil
	}
	return err
}

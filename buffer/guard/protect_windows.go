//go:build windows

package guard

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func protect(b []byte, prot uint32) error {
	if len(b) == 0 {
		return nil
	}
	var old uint32
	return windows.VirtualProtect(uintptr(unsafe.Pointer(&b[0])), uintptr(len(b)), prot, &old)
}

func protectRO(b []byte) error {
	return protect(b, windows.PAGE_READONLY)
}

func protectNone(b []byte) error {
	return protect(b, windows.PAGE_NOACCESS)
}

func unprotect(b []byte) error {
	return protect(b, windows.PAGE_READWRITE)
}

//go:build unix

package guard

import "golang.org/x/sys/unix"

func protectRO(b []byte) error {
	return unix.Mprotect(b, unix.PROT_READ)
}

func protectNone(b []byte) error {
	return unix.Mprotect(b, unix.PROT_NONE)
}

func unprotect(b []byte) error {
	return unix.Mprotect(b, unix.PROT_READ|unix.PROT_WRITE)
}

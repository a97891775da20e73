//go:build !unix && !windows

package guard

// Targets without page protection keep the header and magic checks but
// cannot make out-of-bounds accesses fault.

func protectRO(b []byte) error { return nil }

func protectNone(b []byte) error { return nil }

func unprotect(b []byte) error { return nil }

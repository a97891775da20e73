//go:build unix

package guard

import (
	"os"
	"os/exec"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// The faulting paths kill the whole process (the runtime turns the
// SIGSEGV into a fatal error), so they run in a re-executed copy of the
// test binary and the parent asserts on the abnormal exit.

const crashEnv = "PAGEBUF_GUARD_CRASH"

func runCrashChild(t *testing.T, mode string) {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^"+t.Name()+"$", "-test.v")
	cmd.Env = append(os.Environ(), crashEnv+"="+mode)
	out, err := cmd.CombinedOutput()
	require.Error(t, err, "child survived a write that must fault; output:\n%s", out)
}

func TestUnderrunWriteFaults(t *testing.T) {
	if os.Getenv(crashEnv) == "underrun" {
		g := New(Config{})
		a, err := g.Alloc(64)
		if err != nil {
			os.Exit(0) // no allocation, no fault; parent will flag it
		}
		// One byte before the user region: last byte of the header page.
		p := unsafe.Add(unsafe.Pointer(&a.Data[0]), -1)
		*(*byte)(p) = 0x41
		os.Exit(0)
	}
	runCrashChild(t, "underrun")
}

func TestOverrunWriteFaults(t *testing.T) {
	if os.Getenv(crashEnv) == "overrun" {
		g := New(Config{})
		a, err := g.Alloc(64)
		if err != nil {
			os.Exit(0)
		}
		// First byte of the trailing guard page, one past the last user page.
		p := unsafe.Add(unsafe.Pointer(&a.Data[0]), cap(a.Data))
		*(*byte)(p) = 0x41
		os.Exit(0)
	}
	runCrashChild(t, "overrun")
}

func TestHeaderWriteFaults(t *testing.T) {
	if os.Getenv(crashEnv) == "header" {
		g := New(Config{})
		a, err := g.Alloc(64)
		if err != nil {
			os.Exit(0)
		}
		// The header page is read-only while the block is live; a write
		// into it (attempted magic tampering) must fault.
		*(*byte)(unsafe.Pointer(&a.raw[offMagic])) = 0x00
		os.Exit(0)
	}
	runCrashChild(t, "header")
}

package buffer

import (
	"os"
	"sync"
)

// fallbackPageSize is assumed when the OS query fails or reports nonsense.
const fallbackPageSize = 4096

var pageSize = sync.OnceValue(func() int {
	s := os.Getpagesize()
	if s <= 0 {
		return fallbackPageSize
	}
	return s
})

// PageSize reports the virtual-memory page size for this process,
// queried from the OS once and cached. Always returns the same positive
// value; safe to call from any goroutine.
func PageSize() int {
	return pageSize()
}

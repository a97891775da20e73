package buffer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSizePositive(t *testing.T) {
	require.Positive(t, PageSize())
}

func TestPageSizeStable(t *testing.T) {
	first := PageSize()
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, PageSize())
	}
}

func TestPageSizeConcurrentFirstUse(t *testing.T) {
	// The cache must hand every goroutine the same value even when the
	// first calls race.
	want := PageSize()

	var wg sync.WaitGroup
	results := make([]int, 16)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = PageSize()
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

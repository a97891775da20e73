package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pagekit/pagebuf/buffer"
)

var (
	stressSize  int
	stressCount int
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressSize, "size", 0, "Bytes per allocation (default: one page)")
	cmd.Flags().IntVar(&stressCount, "count", 10000, "Number of alloc/free cycles")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Run alloc/free cycles through the system allocator",
		Long: `The stress command runs repeated allocate/touch/free cycles through the
OS-backed allocator. Every cycle returns its region to the OS, so a run
of any length holds at most one allocation at a time.

Example:
  bufctl stress --size 1048576 --count 50000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
}

func runStress() error {
	if stressCount <= 0 {
		return fmt.Errorf("count must be positive, got %d", stressCount)
	}
	page := buffer.PageSize()
	size := stressSize
	if size <= 0 {
		size = page
	}

	var sys buffer.System
	start := time.Now()
	for i := 0; i < stressCount; i++ {
		b, err := sys.Alloc(size)
		if err != nil {
			return fmt.Errorf("cycle %d: %w", i, err)
		}
		// Touch one byte per page so every page is really committed.
		for off := 0; off < len(b); off += page {
			b[off] = 0xff
		}
		if err := sys.Free(b); err != nil {
			return fmt.Errorf("cycle %d free: %w", i, err)
		}
	}
	elapsed := time.Since(start)

	p := message.NewPrinter(language.English)
	printInfo("%s", p.Sprintf("cycles:      %d\n", stressCount))
	printInfo("%s", p.Sprintf("bytes/cycle: %d\n", size))
	printInfo("%s", p.Sprintf("total bytes: %d\n", int64(size)*int64(stressCount)))
	printInfo("elapsed:     %s (%s/cycle)\n", elapsed, elapsed/time.Duration(stressCount))
	return nil
}

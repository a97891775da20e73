package main

import (
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/pagekit/pagebuf/buffer"
	"github.com/pagekit/pagebuf/buffer/guard"
)

var (
	guardSize       int
	guardOverrun    bool
	guardUnderrun   bool
	guardDoubleFree bool
)

func init() {
	cmd := newGuardCmd()
	cmd.Flags().IntVar(&guardSize, "size", 64, "Bytes to allocate through the guard layer")
	cmd.Flags().BoolVar(&guardOverrun, "overrun", false, "Write one byte past the user region (crashes)")
	cmd.Flags().BoolVar(&guardUnderrun, "underrun", false, "Write one byte before the user region (crashes)")
	cmd.Flags().BoolVar(&guardDoubleFree, "double-free", false, "Free the allocation twice (panics)")
	rootCmd.AddCommand(cmd)
}

func newGuardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guard",
		Short: "Demonstrate the guard-page debug layer",
		Long: `The guard command allocates through the guard-page layer, fills the
user region, and frees it. The --overrun, --underrun, and --double-free
flags deliberately provoke the misuse each guard mechanism exists to
catch; expect the process to die loudly.

Example:
  bufctl guard --size 4096
  bufctl guard --overrun`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGuard()
		},
	}
}

func runGuard() error {
	g := guard.New(guard.Config{Fatal: true, Log: traceLogger()})

	a, err := g.Alloc(guardSize)
	if err != nil {
		return err
	}
	printInfo("allocated %d bytes (user region cap %d, page size %d)\n",
		len(a.Data), cap(a.Data), buffer.PageSize())
	printInfo("in use: %v\n", g.InUse(a))

	for i := range a.Data {
		a.Data[i] = byte(i)
	}

	switch {
	case guardOverrun:
		printInfo("writing past the user region; the trailing guard page should fault\n")
		p := unsafe.Add(unsafe.Pointer(&a.Data[0]), cap(a.Data))
		*(*byte)(p) = 0x41
	case guardUnderrun:
		printInfo("writing before the user region; the header page should fault\n")
		p := unsafe.Add(unsafe.Pointer(&a.Data[0]), -1)
		*(*byte)(p) = 0x41
	case guardDoubleFree:
		printInfo("freeing twice; the second free should panic on the cleared magic\n")
		if err := g.Free(a); err != nil {
			return err
		}
		_ = g.Free(a)
	}

	if err := g.Free(a); err != nil {
		return err
	}
	printInfo("freed; in use: %v\n", g.InUse(a))
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagekit/pagebuf/buffer"
)

func init() {
	rootCmd.AddCommand(newPagesizeCmd())
}

func newPagesizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pagesize",
		Short: "Print the OS virtual-memory page size",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(buffer.PageSize())
		},
	}
}

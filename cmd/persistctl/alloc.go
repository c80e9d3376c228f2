package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newAllocCmd())
}

func newAllocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alloc <image> <name> <size>",
		Short: "Allocate a named area",
		Long: `The alloc command reserves size payload bytes for name. A freed cell
that is large enough is reused whole, so the area may end up larger than
requested.

Example:
  persistctl alloc board.img wifi-ssid 32`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlloc(args)
		},
	}
	return cmd
}

func runAlloc(args []string) error {
	name := args[1]
	size, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", args[2], err)
	}

	st, err := openStore(args[0])
	if err != nil {
		return err
	}
	defer st.Close()

	addr, err := st.Allocate(name, size)
	if err != nil {
		return fmt.Errorf("failed to allocate %q: %w", name, err)
	}
	stored, err := st.SizeOf(name)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"name": name, "data": addr, "size": stored})
	}
	printInfo("Allocated %q: %d bytes at 0x%04X\n", name, stored, addr)
	return nil
}

package main

import (
	"github.com/spf13/cobra"
)

var listFreed bool

func init() {
	cmd := newListCmd()
	cmd.Flags().BoolVar(&listFreed, "freed", false, "Include freed cells")
	rootCmd.AddCommand(cmd)
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <image>",
		Short: "List the areas in chain order",
		Long: `The list command prints every allocated area with its header
address, payload address and size.

Example:
  persistctl list board.img
  persistctl list board.img --freed --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(args)
		},
	}
	return cmd
}

func runList(args []string) error {
	st, err := openStore(args[0])
	if err != nil {
		return err
	}
	defer st.Close()

	areas, err := st.Areas()
	if err != nil {
		return err
	}
	if !listFreed {
		live := areas[:0]
		for _, a := range areas {
			if !a.Freed {
				live = append(live, a)
			}
		}
		areas = live
	}

	if jsonOut {
		return printJSON(areas)
	}

	if len(areas) == 0 {
		printInfo("No areas\n")
		return nil
	}
	printInfo("%-16s %-8s %-8s %s\n", "NAME", "HEADER", "DATA", "SIZE")
	for _, a := range areas {
		name := a.Name
		if a.Freed {
			name = dimText("<freed>")
		}
		printInfo("%-16s 0x%04X   0x%04X   %d\n", name, a.Header, a.Data, a.Size)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/persistkit/eeprom/verify"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Report region occupancy",
		Long: `The info command summarizes the allocatable region: live and freed
areas, bytes in use, space left in the virgin tail, and a fingerprint of
the region contents.

Example:
  persistctl info board.img
  persistctl info board.img --start 0x20 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type infoResult struct {
	Path   string       `json:"path"`
	Virgin bool         `json:"virgin"`
	Stats  verify.Stats `json:"stats"`
}

func runInfo(args []string) error {
	st, err := openStore(args[0])
	if err != nil {
		return err
	}
	defer st.Close()

	virgin, err := st.IsVirgin()
	if err != nil {
		return err
	}
	stats, err := st.Stats()
	if err != nil {
		return fmt.Errorf("failed to walk the chain: %w", err)
	}

	if jsonOut {
		return printJSON(infoResult{Path: args[0], Virgin: virgin, Stats: stats})
	}

	printInfo("\nImage Information:\n")
	printInfo("  File: %s\n", args[0])
	printInfo("  Region: %s (%s)\n", stats.Region, humanize.IBytes(uint64(stats.Region.Len())))
	printInfo("  Virgin: %v\n", virgin)
	printInfo("  Live areas: %d (%s)\n", stats.Live, humanize.IBytes(uint64(stats.LiveBytes)))
	printInfo("  Freed cells: %d (%s, largest %s)\n", stats.Freed,
		humanize.IBytes(uint64(stats.FreedBytes)), humanize.IBytes(uint64(stats.LargestFreed)))
	printInfo("  Unclaimed: %s\n", humanize.IBytes(uint64(stats.VirginBytes)))
	printInfo("  Fingerprint: %016x\n", stats.Fingerprint)
	return nil
}

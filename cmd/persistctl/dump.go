package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	dumpAddr uint32
	dumpLen  int
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().Uint32Var(&dumpAddr, "addr", 0, "First address to dump (default: region start)")
	cmd.Flags().IntVar(&dumpLen, "len", 0, "Number of bytes to dump (default: to region end)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <image>",
		Short: "Hex dump raw image bytes",
		Long: `The dump command prints raw bytes of the image. Without flags it
dumps the whole allocatable region.

Example:
  persistctl dump board.img
  persistctl dump board.img --addr 0x40 --len 64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args)
		},
	}
	return cmd
}

func runDump(cmd *cobra.Command, args []string) error {
	st, err := openStore(args[0])
	if err != nil {
		return err
	}
	defer st.Close()

	r := st.Region()
	addr := r.Start
	if cmd != nil && cmd.Flags().Changed("addr") {
		addr = dumpAddr
	}
	n := dumpLen
	if n <= 0 {
		if addr >= r.End {
			return fmt.Errorf("address 0x%04X is past the region end; pass --len", addr)
		}
		n = int(r.End - addr)
	}

	data, err := st.Dump(addr, n)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(map[string]interface{}{"addr": addr, "len": n, "hex": hex.EncodeToString(data)})
	}
	printInfo("%s", hexDump(addr, data))
	return nil
}

// hexDump formats data like hex.Dump with offsets relative to base.
func hexDump(base uint32, data []byte) string {
	var out []byte
	for off := 0; off < len(data); off += 16 {
		end := min(off+16, len(data))
		line := hex.Dump(data[off:end])
		// hex.Dump prints an 8-digit offset of 0 for each chunk; replace it.
		out = fmt.Appendf(out, "%08x%s", base+uint32(off), line[8:])
	}
	return string(out)
}

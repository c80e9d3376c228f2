package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	writeHex    string
	writeFile   string
	writeString string
)

func init() {
	cmd := newWriteCmd()
	cmd.Flags().StringVar(&writeHex, "hex", "", "Payload as hex digits")
	cmd.Flags().StringVar(&writeFile, "file", "", "Read the payload from a file")
	cmd.Flags().StringVar(&writeString, "string", "", "Payload as a literal string")
	cmd.MarkFlagsMutuallyExclusive("hex", "file", "string")
	rootCmd.AddCommand(cmd)
}

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <image> <name>",
		Short: "Replace the payload of an area",
		Long: `The write command stores a payload in an existing area. The payload
must be exactly as long as the area; bytes that already hold the right value
are not rewritten.

Example:
  persistctl write board.img counter --hex 01000000
  persistctl write board.img calib --file calib.bin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(args)
		},
	}
	return cmd
}

func writePayload() ([]byte, error) {
	switch {
	case writeHex != "":
		return hex.DecodeString(writeHex)
	case writeFile != "":
		return os.ReadFile(writeFile)
	case writeString != "":
		return []byte(writeString), nil
	}
	return nil, errors.New("one of --hex, --file or --string is required")
}

func runWrite(args []string) error {
	name := args[1]
	payload, err := writePayload()
	if err != nil {
		return err
	}

	st, err := openStore(args[0])
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.WriteArea(name, payload)
	if err != nil {
		return fmt.Errorf("failed to write %q (%d of %d bytes stored): %w", name, n, len(payload), err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"name": name, "written": n})
	}
	printInfo("Wrote %d bytes to %q\n", n, name)
	return nil
}

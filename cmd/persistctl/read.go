package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var readHex bool

func init() {
	cmd := newReadCmd()
	cmd.Flags().BoolVar(&readHex, "hex", false, "Print the payload as a hex dump")
	rootCmd.AddCommand(cmd)
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <image> <name>",
		Short: "Print the payload of an area",
		Long: `The read command writes the raw payload of an area to stdout.

Example:
  persistctl read board.img wifi-ssid
  persistctl read board.img calib --hex`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(args)
		},
	}
	return cmd
}

func runRead(args []string) error {
	name := args[1]

	st, err := openStore(args[0])
	if err != nil {
		return err
	}
	defer st.Close()

	size, err := st.SizeOf(name)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", name, err)
	}
	data, err := st.ReadArea(name, size)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", name, err)
	}

	switch {
	case jsonOut:
		return printJSON(map[string]interface{}{"name": name, "size": size, "hex": hex.EncodeToString(data)})
	case readHex:
		printInfo("%s", hex.Dump(data))
		return nil
	default:
		_, err = os.Stdout.Write(data)
		return err
	}
}

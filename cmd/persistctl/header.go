package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/persistkit/internal/format"
)

func init() {
	rootCmd.AddCommand(newHeaderCmd())
}

func newHeaderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "header <image> <name>",
		Short: "Show the header of an area",
		Long: `The header command resolves an area and prints its header and
payload addresses along with the raw header bytes.

Example:
  persistctl header board.img wifi-ssid`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeader(args)
		},
	}
	return cmd
}

type headerResult struct {
	Name   string `json:"name"`
	Header uint32 `json:"header"`
	Data   uint32 `json:"data"`
	Next   uint16 `json:"next"`
	Offset uint16 `json:"data_offset"`
	State  string `json:"state"`
	Raw    string `json:"raw"`
}

func runHeader(args []string) error {
	name := args[1]

	st, err := openStore(args[0])
	if err != nil {
		return err
	}
	defer st.Close()

	hdr, err := st.HeaderAddressOf(name)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", name, err)
	}
	data, err := st.DataAddressOf(name)
	if err != nil {
		return err
	}
	raw, err := st.Dump(hdr, format.HeaderSize)
	if err != nil {
		return err
	}
	h, err := format.DecodeHeader(raw)
	if err != nil {
		return err
	}

	res := headerResult{
		Name:   h.NameString(),
		Header: hdr,
		Data:   data,
		Next:   h.Next,
		Offset: h.Data,
		State:  h.State().String(),
		Raw:    hex.EncodeToString(raw),
	}
	if jsonOut {
		return printJSON(res)
	}

	printInfo("Header of %q:\n", name)
	printInfo("  Address: 0x%04X\n", res.Header)
	printInfo("  Payload: 0x%04X\n", res.Data)
	printInfo("  Next:    0x%04X\n", res.Next)
	printInfo("  Data:    0x%04X\n", res.Offset)
	printInfo("  State:   %s\n", res.State)
	printInfo("%s", hex.Dump(raw))
	return nil
}

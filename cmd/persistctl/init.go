package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/persistkit/eeprom"
)

var initSize int

func init() {
	cmd := newInitCmd()
	cmd.Flags().IntVar(&initSize, "size", 1024, "Image size in bytes")
	rootCmd.AddCommand(cmd)
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <image>",
		Short: "Create a virgin image file",
		Long: `The init command creates an image file with every byte set to the
factory-reset value 0xFF. An existing file is never overwritten.

Example:
  persistctl init board.img --size 4096`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args)
		},
	}
	return cmd
}

func runInit(args []string) error {
	path := args[0]

	f, err := eeprom.Create(path, initSize)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"path": path, "size": initSize})
	}
	printInfo("Created %s (%s, virgin)\n", path, humanize.IBytes(uint64(initSize)))
	return nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/persistkit/eeprom/directory"
	"github.com/joshuapare/persistkit/pkg/persist"
)

func init() {
	rootCmd.AddCommand(newFreeCmd())
}

func newFreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "free <image> <name>",
		Short: "Free a named area",
		Long: `The free command releases an area and scrubs its payload. Freeing a
name that does not exist is reported but is not an error.

Example:
  persistctl free board.img wifi-ssid`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFree(args)
		},
	}
	return cmd
}

func runFree(args []string) error {
	name := args[1]

	st, err := openStore(args[0])
	if err != nil {
		return err
	}
	defer st.Close()

	status, err := st.Free(name)
	if err != nil && !(status == persist.StatusAlreadyFreed && errors.Is(err, directory.ErrNotFound)) {
		return fmt.Errorf("failed to free %q (%s): %w", name, status, err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"name": name, "status": status.String()})
	}
	printInfo("%s: %s\n", name, status)
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joshuapare/persistkit/eeprom"
	"github.com/joshuapare/persistkit/pkg/persist"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	noColor    bool
	startAddr  uint32
	endAddr    uint32
	layoutPath string
)

var rootCmd = &cobra.Command{
	Use:   "persistctl",
	Short: "Inspect and manipulate EEPROM image files holding named areas",
	Long: `persistctl works on image files that mirror the contents of a small
byte-addressable persistent memory. The allocatable region holds a chain of
named areas; persistctl allocates, frees, reads and writes them, and checks
that the chain is consistent.

The region defaults to the whole image. Use --start/--end, or --layout with a
YAML file describing fixed and reserved regions.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Uint32Var(&startAddr, "start", 0, "First address of the allocatable region")
	rootCmd.PersistentFlags().Uint32Var(&endAddr, "end", 0, "End of the allocatable region (exclusive, 0 = image size)")
	rootCmd.PersistentFlags().StringVar(&layoutPath, "layout", "", "YAML layout file (overrides --start/--end)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// layout returns the region layout selected by the global flags.
func layout() (eeprom.Layout, error) {
	if layoutPath != "" {
		printVerbose("Loading layout: %s\n", layoutPath)
		return eeprom.LoadLayout(layoutPath)
	}
	return eeprom.Layout{Fixed: startAddr, Size: endAddr}, nil
}

// openStore opens the image at path with the region from the global flags.
func openStore(path string) (*persist.Store, error) {
	printVerbose("Opening image: %s\n", path)

	l, err := layout()
	if err != nil {
		return nil, err
	}
	st, err := persist.OpenFile(path, l, &persist.Options{Logger: logger()})
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	printVerbose("Region: %s\n", st.Region())
	return st, nil
}

// logger writes store records to stderr in verbose mode.
func logger() *slog.Logger {
	if !verbose || quiet {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Helper functions for output

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	dimText  = color.New(color.FgHiBlack).SprintFunc()
)

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

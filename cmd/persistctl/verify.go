package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/persistkit/eeprom/verify"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <image>",
		Short: "Check the area chain for consistency",
		Long: `The verify command walks the header chain and reports the first
inconsistency: broken links, cells crossing the region end, malformed
headers, duplicate names, or stray bytes in unclaimed space.

Example:
  persistctl verify board.img
  persistctl verify board.img --layout board.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}
	return cmd
}

type verifyResult struct {
	Valid  bool   `json:"valid"`
	Type   string `json:"type,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Error  string `json:"error,omitempty"`
}

func runVerify(args []string) error {
	st, err := openStore(args[0])
	if err != nil {
		return err
	}
	defer st.Close()

	verr := st.Verify()
	res := verifyResult{Valid: verr == nil}
	if verr != nil {
		res.Error = verr.Error()
		var ve *verify.ValidationError
		if errors.As(verr, &ve) {
			res.Type = ve.Type
			res.Offset = ve.Offset
		}
	}

	if jsonOut {
		if err := printJSON(res); err != nil {
			return err
		}
	} else if res.Valid {
		printInfo("%s Chain consistent\n", okMark("✓"))
	} else {
		printInfo("%s %s\n", failMark("✗"), res.Error)
	}

	if verr != nil {
		return fmt.Errorf("verification failed: %w", verr)
	}
	return nil
}

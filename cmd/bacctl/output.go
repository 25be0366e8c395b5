package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// render writes v as indented JSON or the text produced by text.
func (c *cli) render(cmd *cobra.Command, v any, text func() string) error {
	out := cmd.OutOrStdout()
	if c.output == outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(out, text())
	return err
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var lookupJSON bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <code>",
	Short: "Resolve a level code across all atlases",
	Long:  "Displays every label field, in every atlas, that assigns a name to the given categorical code.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "Output as JSON")
}

func runLookup(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	matches := reg.Resolve(args[0])
	if len(matches) == 0 {
		return fmt.Errorf("code %q is not used by any atlas", args[0])
	}

	if lookupJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	fmt.Print(formatMatches(args[0], matches))
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/corey/parc/atlases"
	"github.com/corey/parc/internal/domain/parcellation"
)

var rootCmd = &cobra.Command{
	Use:   "parc",
	Short: "parc — cortical atlas descriptor queries",
	Long:  "Lists, describes, and checks the BIDS atlas descriptors compiled into the binary.",
}

// loadRegistry parses the embedded descriptors.
func loadRegistry() (*parcellation.Registry, error) {
	return parcellation.LoadRegistry(atlases.FS, ".")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(checkCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var describeFormat string

var describeCmd = &cobra.Command{
	Use:   "describe <atlas>",
	Short: "Show one atlas descriptor",
	Long:  "Displays the full descriptor for one atlas: density, spatial references, and label fields.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	describeCmd.Flags().StringVar(&describeFormat, "format", "text", "Output format: text, json, or yaml")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	d := reg.Lookup(args[0])
	if d == nil {
		return fmt.Errorf("unknown atlas %q (have: %v)", args[0], reg.Names())
	}

	switch describeFormat {
	case "text":
		fmt.Print(formatDescriptor(d))
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		if err := enc.Encode(d.Document()); err != nil {
			enc.Close()
			return err
		}
		// Close flushes; it is the only place a write error can surface.
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json, or yaml)", describeFormat)
	}
}

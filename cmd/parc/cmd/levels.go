package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var levelsJSON bool

var levelsCmd = &cobra.Command{
	Use:   "levels <atlas> <field>",
	Short: "Enumerate a label field's levels",
	Long:  "Displays the code → name table of one categorical label field, e.g. community_yeo.",
	Args:  cobra.ExactArgs(2),
	RunE:  runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&levelsJSON, "json", false, "Output as JSON")
}

func runLevels(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	d := reg.Lookup(args[0])
	if d == nil {
		return fmt.Errorf("unknown atlas %q (have: %v)", args[0], reg.Names())
	}

	field, ok := d.Field(args[1])
	if !ok {
		return fmt.Errorf("atlas %q has no field %q (have: %v)", args[0], args[1], d.FieldNames())
	}
	if len(field.Levels) == 0 {
		return fmt.Errorf("field %q is free-form, it has no level table", args[1])
	}

	if levelsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(field.Levels)
	}

	fmt.Printf("%s — %s\n", args[1], field.LongName)
	fmt.Print(formatLevels(field))
	return nil
}

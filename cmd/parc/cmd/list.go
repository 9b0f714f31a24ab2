package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the embedded atlases",
	Long:  "Displays every embedded atlas with its surface density and label field count.",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	if listJSON {
		type row struct {
			Name    string   `json:"name"`
			Density []string `json:"density"`
			Fields  []string `json:"fields"`
		}
		rows := make([]row, 0, reg.AtlasCount)
		for _, d := range reg.Atlases {
			rows = append(rows, row{
				Name:    d.Name,
				Density: sortedKeys(d.Density),
				Fields:  d.FieldNames(),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Print(formatList(reg))
	return nil
}

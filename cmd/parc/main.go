// parc is a query tool for the embedded BIDS atlas descriptors.
// Single binary, zero config — the descriptors ship inside it.
package main

import (
	"os"

	"github.com/corey/parc/cmd/parc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

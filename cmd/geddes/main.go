// Command geddes decodes powder diffraction pattern files.
//
// Usage:
//
//	geddes read scan.xrdml --output csv
//	geddes inspect scan.raw
//	geddes formats
//
// Global flags may also be set in a config file (--config) or through
// environment variables prefixed with GEDDES_, e.g. GEDDES_RAW_ORDER=bruker,gsas.
package main

import (
	"os"

	"github.com/arloliu/geddes/cmd/geddes/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
